package intrinsics

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"merc/internal/value"
)

// dbManager pools *sql.DB connections under a language-level string id,
// the same id-keyed shape as the teacher's DBManager.
type dbManager struct {
	mu    sync.RWMutex
	conns map[string]*sql.DB
}

var dbm = &dbManager{conns: make(map[string]*sql.DB)}

func driverName(kind string) (string, bool) {
	switch kind {
	case "sqlite", "sqlite3":
		return "sqlite", true
	case "postgres", "postgresql":
		return "postgres", true
	case "mysql":
		return "mysql", true
	case "mssql", "sqlserver":
		return "sqlserver", true
	default:
		return "", false
	}
}

func (m *dbManager) connect(id, kind, dsn string) error {
	driver, ok := driverName(kind)
	if !ok {
		return fmt.Errorf("unsupported database kind %q", kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.conns[id]; exists {
		return fmt.Errorf("connection %q already exists", id)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("ping: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	m.conns[id] = db
	return nil
}

func (m *dbManager) get(id string) (*sql.DB, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db, ok := m.conns[id]
	return db, ok
}

func (m *dbManager) close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	db, ok := m.conns[id]
	if !ok {
		return fmt.Errorf("connection %q not found", id)
	}
	delete(m.conns, id)
	return db.Close()
}

func dbFuncs() []*value.Function {
	return []*value.Function{
		newOp("dbconnect", 3, dbconnect),
		newOp("dbquery", 2, dbquery),
		newOp("dbexecute", 2, dbexecute),
		newOp("dbclose", 1, dbclose),
	}
}

// dbconnect(id, kind, dsn) — stack holds id, kind, dsn pushed in that
// order, so dsn is on top.
func dbconnect(s value.Stack) {
	dsn := value.ToString(s.Pop())
	kind := value.ToString(s.Pop())
	id := value.ToString(s.Pop())

	if err := dbm.connect(id, kind, dsn); err != nil {
		log.Printf("warning: dbconnect %q: %v", id, err)
		s.Push(false)
		return
	}
	s.Push(true)
}

// dbquery(id, query) returns a List of row Lists, each cell
// stringified, with the column-name row prepended.
func dbquery(s value.Stack) {
	query := value.ToString(s.Pop())
	id := value.ToString(s.Pop())

	db, ok := dbm.get(id)
	if !ok {
		log.Printf("warning: dbquery: no connection %q", id)
		s.Push(value.NewList(nil))
		return
	}

	rows, err := db.Query(query)
	if err != nil {
		log.Printf("warning: dbquery %q: %v", id, err)
		s.Push(value.NewList(nil))
		return
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		log.Printf("warning: dbquery %q: %v", id, err)
		s.Push(value.NewList(nil))
		return
	}

	header := make([]value.Value, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	out := []value.Value{value.NewList(header)}

	raw := make([]interface{}, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			log.Printf("warning: dbquery %q: %v", id, err)
			continue
		}
		cells := make([]value.Value, len(columns))
		for i, v := range raw {
			cells[i] = stringifyCell(v)
		}
		out = append(out, value.NewList(cells))
	}
	s.Push(value.NewList(out))
}

func stringifyCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func dbexecute(s value.Stack) {
	query := value.ToString(s.Pop())
	id := value.ToString(s.Pop())

	db, ok := dbm.get(id)
	if !ok {
		log.Printf("warning: dbexecute: no connection %q", id)
		s.Push(int64(0))
		return
	}

	result, err := db.Exec(query)
	if err != nil {
		log.Printf("warning: dbexecute %q: %v", id, err)
		s.Push(int64(0))
		return
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("warning: dbexecute %q: %v", id, err)
		s.Push(int64(0))
		return
	}
	s.Push(affected)
}

func dbclose(s value.Stack) {
	id := value.ToString(s.Pop())
	if err := dbm.close(id); err != nil {
		log.Printf("warning: dbclose %q: %v", id, err)
		s.Push(false)
		return
	}
	s.Push(true)
}
