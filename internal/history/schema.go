// Package history keeps a SQLite journal of rendered documents.
package history

// Schema creates the journal tables.
const Schema = `
-- One row per successfully rendered document
CREATE TABLE IF NOT EXISTS renders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    template TEXT NOT NULL,            -- template label
    doc_num TEXT NOT NULL,             -- document number as entered
    executor TEXT NOT NULL,            -- executor key
    doc_date TEXT NOT NULL,            -- YYYY-MM-DD
    amount INTEGER NOT NULL,
    output_path TEXT NOT NULL,
    created_at TEXT NOT NULL           -- RFC 3339, UTC
);

CREATE INDEX IF NOT EXISTS idx_renders_template_num
    ON renders(template, doc_num);
`
