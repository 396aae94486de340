// Package classify maps each delta hunk to categories from a fixed
// transformation taxonomy by walking an ordered, declarative rule table.
//
// Rules come in three forms — structural patterns over the delta's block
// and edge summary, token patterns over changed line text, and pass-name
// hints — evaluated in declared priority order and ending in the Other
// fallback, so every hunk carries at least one category. The table is
// data: it ships with defaults and can be replaced from a TOML file.
package classify
