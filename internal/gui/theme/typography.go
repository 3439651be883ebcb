package theme

// Typography is the font size scale in pixels.
type Typography struct {
	Title  int32
	Header int32
	Body   int32
	Small  int32
}

var Type = Typography{
	Title:  34,
	Header: 24,
	Body:   20,
	Small:  16,
}
