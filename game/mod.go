// Package game holds the Half Moon rules: cards with lunar phases, board
// layouts, the scoring evaluator and the turn-by-turn game state.
//
// A placement is scored by Evaluate, which looks only at occupied nodes:
// matching neighbors form pairs, opposite phases form full moons and runs of
// consecutive phases through the placed node form a chain. The placer takes
// ownership of every card in such a chain.
package game
