package input

// Queue is a FIFO of events. It is owned by the event loop goroutine and is not safe for
// concurrent use.
type Queue struct {
	events []Event
	head   int
}

// NewQueue creates an empty queue with room for capacity events before growing.
func NewQueue(capacity int) *Queue {
	return &Queue{events: make([]Event, 0, capacity)}
}

// Push appends an event to the back of the queue.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes and returns the event at the front of the queue.
//
// Returns:
//   - Event: the oldest queued event, or nil
//   - bool: false if the queue was empty
func (q *Queue) Pop() (Event, bool) {
	if q.head >= len(q.events) {
		return nil, false
	}
	e := q.events[q.head]
	q.events[q.head] = nil
	q.head++
	if q.head == len(q.events) {
		q.events = q.events[:0]
		q.head = 0
	}
	return e, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.events) - q.head
}

// Drain pops events in order and hands each to fn until the queue is empty. Events pushed by
// fn are handled in the same drain, after everything that was already queued.
//
// Parameters:
//   - fn: called once per event
//
// Returns:
//   - int: the number of events handled
func (q *Queue) Drain(fn func(Event)) int {
	n := 0
	for {
		e, ok := q.Pop()
		if !ok {
			return n
		}
		fn(e)
		n++
	}
}
