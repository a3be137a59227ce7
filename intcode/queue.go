package intcode

// Queue is a FIFO of words.
type Queue struct {
	Data []Word
}

func (q *Queue) Push(values ...Word) {
	q.Data = append(q.Data, values...)
}

func (q *Queue) Pop() (value Word, ok bool) {
	value, ok = q.Peek()
	if ok {
		q.Data = q.Data[1:]
		if len(q.Data) == 0 {
			q.Data = nil
		}
	}
	return
}

func (q *Queue) Peek() (value Word, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[0], true
}

// Last returns the most recently pushed word.
func (q *Queue) Last() (value Word, ok bool) {
	if q.Empty() {
		return
	}

	return q.Data[len(q.Data)-1], true
}

func (q *Queue) Empty() bool {
	return len(q.Data) == 0
}

func (q *Queue) Len() int {
	return len(q.Data)
}

// Drain removes and returns all queued words.
func (q *Queue) Drain() (values []Word) {
	values = q.Data
	q.Data = nil
	return
}

func (q *Queue) Reset() {
	q.Data = nil
}
