package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username    TEXT PRIMARY KEY,
    created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS address_books (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS preferences (
    address_book_id TEXT NOT NULL REFERENCES address_books(id) ON DELETE CASCADE,
    key             TEXT NOT NULL,
    value           TEXT NOT NULL,
    PRIMARY KEY (address_book_id, key)
);

CREATE TABLE IF NOT EXISTS synced_contacts (
    address_book_id TEXT NOT NULL REFERENCES address_books(id) ON DELETE CASCADE,
    local_id        TEXT NOT NULL,
    remote_id       TEXT NOT NULL,
    etag            TEXT,
    updated_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (address_book_id, local_id)
);

CREATE TABLE IF NOT EXISTS settings (
    key         TEXT PRIMARY KEY,
    value       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_synced_contacts_remote ON synced_contacts(address_book_id, remote_id);
`
