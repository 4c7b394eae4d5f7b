package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS collections (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);
`
