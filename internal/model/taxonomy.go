package model

// Category is one semantic label and the keywords that assign it.
type Category struct {
	Label    string   // label written into Record.MessageTypes
	Desc     string   // human-readable meaning
	Keywords []string // substrings matched against lower-cased text
}
