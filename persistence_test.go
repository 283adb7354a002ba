package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/MoonshotAI/samcount/automaton"
)

func openTestPersistence(t *testing.T) *Persistence {
	t.Helper()
	p, err := openPersistence(filepath.Join(t.TempDir(), "samcount.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func recordQuery(t *testing.T, p *Persistence, text, pattern string) int64 {
	t.Helper()
	a, err := automaton.Build(text, automaton.Options{})
	if err != nil {
		t.Fatal(err)
	}
	id, err := p.Record(newQuery(a, text, pattern, a.Occurrences(pattern), time.Millisecond, time.Microsecond))
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestPersistence_RecordAndList(t *testing.T) {
	p := openTestPersistence(t)
	recordQuery(t, p, "abcbc", "bc")
	recordQuery(t, p, "banana", "ana")
	last := recordQuery(t, p, "banana", "bc")

	queries, err := p.ListQueries(0, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(queries) != 3 || queries[0].ID != last {
		t.Fatalf("want 3 queries newest first, got %d", len(queries))
	}
	if q := queries[1]; q.Pattern != "ana" || q.Occurrences != 2 || q.TextLength != 6 || q.Text != "banana" {
		t.Errorf("unexpected row: %+v", q)
	}
	if q := queries[2]; q.Occurrences != 2 || !q.BuildLatency.Valid || q.BuildLatency.Int64 != int64(time.Millisecond) {
		t.Errorf("unexpected row: %+v", q)
	}
	if queries[0].CreatedAt.IsZero() {
		t.Errorf("created_at not scanned")
	}

	type testcase struct {
		n             int64
		pattern, grep string
		want          int
	}
	var testcases = []testcase{
		{n: 2, want: 2},
		{pattern: "bc", want: 2},
		{pattern: "ana", want: 1},
		{grep: "nan", want: 2},
		{grep: "cbc", want: 1},
		{grep: "xyz", want: 0},
		{pattern: "bc", grep: "ban", want: 1},
	}
	for i, tc := range testcases {
		t.Run(strconv.Itoa(i+1), func(t *testing.T) {
			got, err := p.ListQueries(tc.n, tc.pattern, tc.grep)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tc.want {
				t.Errorf("n=%d pattern=%q grep=%q: want %d rows, got %d", tc.n, tc.pattern, tc.grep, tc.want, len(got))
			}
		})
	}
}

func TestPersistence_GetAndCleanup(t *testing.T) {
	p := openTestPersistence(t)
	id := recordQuery(t, p, "aaaa", "aa")
	query, err := p.GetQuery(id)
	if err != nil {
		t.Fatal(err)
	}
	if query.Occurrences != 3 || query.States != 5 {
		t.Errorf("unexpected row: %+v", query)
	}
	if _, err = p.GetQuery(id + 1); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("want sql.ErrNoRows, got %v", err)
	}
	result, err := p.Cleanup("2000-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := result.RowsAffected(); n != 0 {
		t.Errorf("cleanup before 2000: want 0 rows, got %d", n)
	}
	result, err = p.Cleanup("2999-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := result.RowsAffected(); n != 1 {
		t.Errorf("cleanup before 2999: want 1 row, got %d", n)
	}
}

func TestSamOccurrences(t *testing.T) {
	if got := samOccurrences("abcbc", "bc"); got != 2 {
		t.Errorf("want 2, got %d", got)
	}
	if got := samOccurrences("", "a"); got != 0 {
		t.Errorf("want 0, got %d", got)
	}
}

func TestQuery_JSON(t *testing.T) {
	query := &Query{
		ID:           7,
		Text:         "banana\n",
		TextLength:   7,
		States:       10,
		Pattern:      "ana",
		Occurrences:  2,
		BuildLatency: sql.NullInt64{Int64: int64(2 * time.Millisecond), Valid: true},
		CreatedAt:    SqliteTime{Time: time.Date(2026, 10, 14, 9, 30, 0, 0, time.Local)},
	}
	document, err := query.JSON()
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		ID   int64 `json:"id"`
		Text struct {
			Content string `json:"content"`
			Length  int64  `json:"length"`
		} `json:"text"`
		Query struct {
			Pattern     string `json:"pattern"`
			Occurrences int64  `json:"occurrences"`
		} `json:"query"`
		Latency   map[string]string `json:"latency"`
		CreatedAt string            `json:"created_at"`
	}
	if err = json.Unmarshal([]byte(document), &got); err != nil {
		t.Fatalf("%s: %s", document, err)
	}
	if got.ID != 7 || got.Text.Content != "banana\n" || got.Text.Length != 7 ||
		got.Query.Pattern != "ana" || got.Query.Occurrences != 2 ||
		got.CreatedAt != "2026-10-14 09:30:00" {
		t.Errorf("unexpected document: %s", document)
	}
	if _, ok := got.Latency["query"]; ok || got.Latency["build"] != "2ms" {
		t.Errorf("unexpected latency: %v", got.Latency)
	}
}

func TestSqliteTime_Scan(t *testing.T) {
	var st SqliteTime
	if err := st.Scan("2026-10-14 09:30:00"); err != nil {
		t.Fatal(err)
	}
	if st.Year() != 2026 || st.Hour() != 9 {
		t.Errorf("unexpected time: %s", st.Time)
	}
	if err := st.Scan(42); err == nil {
		t.Errorf("want error scanning an int")
	}
}
