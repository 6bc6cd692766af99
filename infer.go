package sheetstat

// ColumnType is the inferred data type of a column.
type ColumnType string

const (
	// TypeNumber marks a numeric column.
	TypeNumber ColumnType = "number"
	// TypeDate marks a date column.
	TypeDate ColumnType = "date"
	// TypeText marks a text column, the fallback classification.
	TypeText ColumnType = "text"
)

// ColumnDescriptor pairs a column name with its inferred type. Descriptors
// are created once per analysis pass and are immutable thereafter.
type ColumnDescriptor struct {
	Name string     `json:"name"`
	Type ColumnType `json:"inferred_type"`
}

const (
	defaultSampleSize = 100
	typeVoteThreshold = 0.8
)

// InferType classifies a column's values as number, date, or text using the
// default sample size. Empty values are excluded before classification; a
// column with no non-empty values infers as text.
func InferType(values []Cell) ColumnType {
	return inferType(values, defaultSampleSize)
}

// inferType takes up to sampleSize non-empty values and classifies by
// majority vote: number if at least 80% of the sample coerces numerically,
// else date if at least 80% parses as a date, else text. Each column gets
// exactly one type; ties and minorities default to text.
func inferType(values []Cell, sampleSize int) ColumnType {
	if sampleSize <= 0 {
		sampleSize = defaultSampleSize
	}

	sample := make([]Cell, 0, sampleSize)
	for _, c := range values {
		if c.IsNull() {
			continue
		}
		sample = append(sample, c)
		if len(sample) == sampleSize {
			break
		}
	}
	if len(sample) == 0 {
		return TypeText
	}

	numeric, dates := 0, 0
	for _, c := range sample {
		if _, ok := c.Float(); ok {
			numeric++
		}
		if _, ok := c.Time(); ok {
			dates++
		}
	}

	total := float64(len(sample))
	if float64(numeric)/total >= typeVoteThreshold {
		return TypeNumber
	}
	if float64(dates)/total >= typeVoteThreshold {
		return TypeDate
	}
	return TypeText
}

// inferColumns infers a descriptor for every column of the table in column
// order.
func inferColumns(t *Table, sampleSize int) []ColumnDescriptor {
	descriptors := make([]ColumnDescriptor, 0, len(t.columns))
	for _, name := range t.columns {
		cells, _ := t.Column(name)
		descriptors = append(descriptors, ColumnDescriptor{
			Name: name,
			Type: inferType(cells, sampleSize),
		})
	}
	return descriptors
}
