// Package sim is the flappy game-loop simulation engine.
//
// A Session owns every piece of mutable state: the Character, the active
// obstacle pairs, the pair pool, the scrolling ground, score, difficulty and
// the game-over flag. Each clock tick the presentation layer calls
// Session.Update with the elapsed time; afterwards it reads a Snapshot and
// draws it. The package never touches a rendering API.
//
// Per tick, in order:
//
//  1. consume a latched flap request and update the character
//  2. test the character against every active obstacle
//  3. stop here once the run is over (the character keeps falling)
//  4. recompute difficulty from score
//  5. advance pairs, scoring and recycling those that left the screen
//  6. spawn a pair when none is active or the gap to the right edge is large
//  7. scroll the ground
//
// A Session is single-writer: Update, Resize, Snapshot and Close must be
// called from one goroutine. RequestFlap and GameOver are safe to call from
// any goroutine.
package sim
