// meta/meta.go
package meta

// DECK_SIZE defines the number of cards dealt to each side per level.
const DECK_SIZE = 30

// HAND_SIZE defines the number of cards held in hand; the rest form the draw pile.
const HAND_SIZE = 3

// MAX_TURNS caps a match, passes included.
const MAX_TURNS = 300

// NUM_GAMES defines the number of games per experiment matchup.
const NUM_GAMES = 30
