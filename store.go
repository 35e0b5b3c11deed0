package main

import (
	"database/sql"
	"encoding/json"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the interaction history. Load returns the list newest
// first; Append writes one new record.
type Store interface {
	Load() ([]Interaction, error)
	Append(Interaction) error
}

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS interactions (
		id          TEXT PRIMARY KEY,
		agent_name  TEXT NOT NULL,
		date        TEXT NOT NULL,
		transcript  TEXT DEFAULT '',
		result_json TEXT,
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at);
	CREATE INDEX IF NOT EXISTS idx_interactions_agent ON interactions(agent_name);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(it Interaction) error {
	var resultJSON sql.NullString
	if it.Result != nil {
		data, err := json.Marshal(it.Result)
		if err != nil {
			return err
		}
		resultJSON = sql.NullString{String: string(data), Valid: true}
	}
	_, err := s.db.Exec(
		`INSERT INTO interactions (id, agent_name, date, transcript, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		it.ID, it.AgentName, it.Date, it.Transcript, resultJSON, it.CreatedAt,
	)
	return err
}

// Load reads the full history, newest first. A row whose stored verdict
// no longer decodes is kept with a nil Result and a logged warning so a
// bad record never blocks startup.
func (s *SQLiteStore) Load() ([]Interaction, error) {
	rows, err := s.db.Query(
		`SELECT id, agent_name, date, transcript, result_json, created_at
		 FROM interactions ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Interaction
	for rows.Next() {
		var it Interaction
		var resultJSON sql.NullString
		if err := rows.Scan(&it.ID, &it.AgentName, &it.Date, &it.Transcript, &resultJSON, &it.CreatedAt); err != nil {
			return nil, err
		}
		if resultJSON.Valid && resultJSON.String != "" {
			var result AnalysisResult
			if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
				log.Printf("store: skipping undecodable result for interaction %s: %v", it.ID, err)
			} else {
				it.Result = &result
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
