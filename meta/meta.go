// meta/meta.go
package meta

// DEFAULT_PLAYERS is the number of AI players seated when none is configured.
const DEFAULT_PLAYERS = 2

// MAX_ROUNDS is the fixed length of a game.
const MAX_ROUNDS = 10

// STARTING_WORKERS is the tribe size every player starts with.
const STARTING_WORKERS = 5

// VIEW_ADDR is where the browser view listens by default.
const VIEW_ADDR = "127.0.0.1:8080"

// REFRESH_SECONDS is how often viewers poll for a new snapshot.
const REFRESH_SECONDS = 3

// MAX_PLAN_STEPS bounds the placement loop of one AI turn.
const MAX_PLAN_STEPS = 64

// EXPERIMENT_GAMES is the batch size when --games is not given.
const EXPERIMENT_GAMES = 1

// MAX_PLAYERS is the largest table the board supports.
const MAX_PLAYERS = 4
