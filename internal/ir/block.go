package ir

// BlockData is the data owned by a Block handle: its parameter list. A
// block's terminator is not stored here — it is its last instruction in
// Layout order (spec.md §3 "Block data").
type BlockData struct {
	Params ValueList
}
