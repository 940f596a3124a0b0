package textstat

// Counter counts token occurrences and remembers the order in which distinct
// tokens were first seen. Enumeration order is that first-seen order, which is
// what Score relies on to break idf ties.
type Counter struct {
	index  map[string]int // word -> position in words/counts
	words  []string
	counts []int
	total  int
}

// NewCounter returns an empty counter sized for roughly sizeHint tokens.
func NewCounter(sizeHint int) *Counter {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Counter{index: make(map[string]int, sizeHint)}
}

// Add records one occurrence of word.
func (c *Counter) Add(word string) {
	c.total++
	if i, ok := c.index[word]; ok {
		c.counts[i]++
		return
	}
	c.index[word] = len(c.words)
	c.words = append(c.words, word)
	c.counts = append(c.counts, 1)
}

// Count returns how many times word was added.
func (c *Counter) Count(word string) int {
	i, ok := c.index[word]
	if !ok {
		return 0
	}
	return c.counts[i]
}

// Words returns the distinct words in first-seen order. The slice is a copy.
func (c *Counter) Words() []string {
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

// Len returns the number of distinct words.
func (c *Counter) Len() int { return len(c.words) }

// Total returns the number of occurrences added, duplicates included.
func (c *Counter) Total() int { return c.total }

// each calls fn for every distinct word in first-seen order.
func (c *Counter) each(fn func(word string, count int)) {
	for i, w := range c.words {
		fn(w, c.counts[i])
	}
}
