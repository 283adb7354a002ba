package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/MoonshotAI/samcount/automaton"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const sqlDriver = "samcount_sqlite3"

func init() {
	sql.Register(sqlDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if err := conn.RegisterFunc("sam_occurrences", samOccurrences, true); err != nil {
				return err
			}
			return nil
		},
	})
	sqlx.BindDriver(sqlDriver, sqlx.QUESTION)
}

// samOccurrences backs the sam_occurrences(text, pattern) sql function.
func samOccurrences(text, pattern string) int64 {
	a, err := automaton.Build(text, automaton.Options{MaxStates: -1})
	if err != nil {
		return 0
	}
	defer a.Release()
	return int64(a.Occurrences(pattern))
}

const createTableSQL = `
create table if not exists sam_queries
(
    id            integer not null
        constraint sam_queries_pk
            primary key autoincrement,
    text          text    not null,
    text_length   integer not null,
    states        integer not null,
    pattern       text    not null,
    occurrences   integer not null,
    build_latency integer,
    query_latency integer,
    created_at    text default (datetime('now', 'localtime')) not null
);
`

type Persistence struct {
	db *sqlx.DB
}

func openPersistence(path string) (*Persistence, error) {
	db, err := sqlx.Open(sqlDriver, "file:"+path)
	if err != nil {
		return nil, err
	}
	p := &Persistence{db: db}
	if err = p.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return p, nil
}

func mustOpenPersistence() *Persistence {
	p, err := openPersistence(getDatabasePath())
	if err != nil {
		logFatal(err)
	}
	return p
}

func (p *Persistence) Close() error {
	return p.db.Close()
}

func (p *Persistence) createTable() error {
	_, err := p.db.Exec(createTableSQL)
	return err
}

func (p *Persistence) Record(query *Query) (int64, error) {
	result, err := p.db.NamedExec(`
		insert into sam_queries (
		    text,
		    text_length,
		    states,
		    pattern,
		    occurrences,
		    build_latency,
		    query_latency
		) values (
		    :text,
		    :text_length,
		    :states,
		    :pattern,
		    :occurrences,
		    :build_latency,
		    :query_latency
		);
	`, query)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListQueries returns the latest n queries, newest first; n <= 0 means no limit.
// A non-empty pattern keeps exact matches only, a non-empty grep keeps queries
// whose text contains grep.
func (p *Persistence) ListQueries(n int64, pattern string, grep string) ([]*Query, error) {
	var (
		sqlBuilder strings.Builder
		args       = make(map[string]any, 3)
	)
	sqlBuilder.WriteString("select * from sam_queries where 1 = 1")
	if pattern != "" {
		sqlBuilder.WriteString(" and pattern = :pattern")
		args["pattern"] = pattern
	}
	if grep != "" {
		sqlBuilder.WriteString(" and sam_occurrences(text, :grep) > 0")
		args["grep"] = grep
	}
	sqlBuilder.WriteString(" order by id desc")
	if n > 0 {
		sqlBuilder.WriteString(" limit :n")
		args["n"] = n
	}
	query, bound, err := p.db.BindNamed(sqlBuilder.String(), args)
	if err != nil {
		return nil, err
	}
	var queries []*Query
	if err = p.db.Select(&queries, query, bound...); err != nil {
		return nil, err
	}
	return queries, nil
}

func (p *Persistence) GetQuery(id int64) (*Query, error) {
	query := new(Query)
	if err := p.db.Get(query, "select * from sam_queries where id = ?", id); err != nil {
		return nil, err
	}
	return query, nil
}

func (p *Persistence) Cleanup(before string) (sql.Result, error) {
	return p.db.NamedExec(
		"delete from sam_queries where created_at < :before",
		map[string]any{"before": before},
	)
}

type Query struct {
	ID           int64         `db:"id"`
	Text         string        `db:"text"`
	TextLength   int64         `db:"text_length"`
	States       int64         `db:"states"`
	Pattern      string        `db:"pattern"`
	Occurrences  int64         `db:"occurrences"`
	BuildLatency sql.NullInt64 `db:"build_latency"`
	QueryLatency sql.NullInt64 `db:"query_latency"`
	CreatedAt    SqliteTime    `db:"created_at"`
}

func newQuery(a *automaton.Automaton, text, pattern string, occurrences int, buildLatency, queryLatency time.Duration) *Query {
	return &Query{
		Text:         text,
		TextLength:   int64(a.TextLength()),
		States:       int64(a.NumStates()),
		Pattern:      pattern,
		Occurrences:  int64(occurrences),
		BuildLatency: sql.NullInt64{Int64: int64(buildLatency), Valid: true},
		QueryLatency: sql.NullInt64{Int64: int64(queryLatency), Valid: true},
	}
}

type SqliteTime struct {
	time.Time
}

func (t *SqliteTime) Scan(src any) (err error) {
	if src == nil {
		return nil
	}
	var timeString string
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		timeString = v
	case []byte:
		timeString = string(v)
	default:
		return fmt.Errorf("cannot convert type %T to time.Time", src)
	}
	t.Time, err = time.ParseInLocation(time.DateTime, timeString, time.Local)
	if err != nil {
		return err
	}
	return nil
}
