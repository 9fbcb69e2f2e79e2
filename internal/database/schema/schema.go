package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Player documents
--
-- The full player state is a JSONB document guarded by an optimistic version
-- counter. Username, balance and profit/hour are denormalized so leaderboard
-- and cell aggregation queries stay on indexed columns.
CREATE TABLE IF NOT EXISTS players (
    player_id BIGINT PRIMARY KEY,
    username VARCHAR(100) NOT NULL DEFAULT '',
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    profit_per_hour INTEGER NOT NULL DEFAULT 0,
    doc JSONB NOT NULL,
    version BIGINT NOT NULL DEFAULT 1,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_players_balance ON players (balance DESC);

-- Game configuration singleton
CREATE TABLE IF NOT EXISTS game_config (
    id SMALLINT PRIMARY KEY CHECK (id = 1),
    doc JSONB NOT NULL,
    version BIGINT NOT NULL DEFAULT 1,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Daily combo/cipher events, one row per UTC day
CREATE TABLE IF NOT EXISTS daily_events (
    day VARCHAR(10) PRIMARY KEY,
    doc JSONB NOT NULL
);

-- Cells (player guilds)
CREATE TABLE IF NOT EXISTS cells (
    cell_id UUID PRIMARY KEY,
    invite_code VARCHAR(16) UNIQUE NOT NULL,
    doc JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Cell membership
--
-- player_id is globally unique: a player belongs to at most one cell.
CREATE TABLE IF NOT EXISTS cell_members (
    cell_id UUID NOT NULL REFERENCES cells(cell_id) ON DELETE CASCADE,
    player_id BIGINT UNIQUE NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (cell_id, player_id)
);

CREATE INDEX IF NOT EXISTS idx_cell_members_cell ON cell_members (cell_id);

-- Append-only event log
--
-- player_id is nullable: rotation events and other system events have no
-- player. Rows are pruned by the cleanup job, not by foreign keys.
CREATE TABLE IF NOT EXISTS event_log (
    id BIGSERIAL PRIMARY KEY,
    event_type VARCHAR(64) NOT NULL,
    player_id BIGINT,
    payload JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_event_log_player ON event_log (player_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_event_log_type ON event_log (event_type, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_event_log_created ON event_log (created_at);
`
