package components

const (
	// ColumnWidth is the outer width of a board column
	ColumnWidth = 34

	// CardWidth leaves room for the column border and padding
	CardWidth = ColumnWidth - 4

	// CardHeight is the fixed height of a partner card, borders included
	CardHeight = 5

	// cardTextWidth is what fits on a card line after the leading space
	cardTextWidth = CardWidth - 3

	// StageCardWidth is the width of a dashboard stage card
	StageCardWidth = 22
)
