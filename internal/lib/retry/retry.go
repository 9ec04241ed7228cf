package retry

import "time"

// Policy is a bounded retry with a fixed backoff between attempts.
//
// Penultimate, when set, runs after the backoff that precedes the final
// attempt. The scraper uses it for a hard page reset: a UI that failed
// every softer attempt usually needs a reload rather than another click.
type Policy struct {
	Attempts    int
	Backoff     time.Duration
	Penultimate func()
	BetweenTry  func()
}

// Do runs op until it returns nil or the attempt budget is exhausted.
// The last error is returned on exhaustion.
func (p Policy) Do(op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		time.Sleep(p.Backoff)
		if p.BetweenTry != nil {
			p.BetweenTry()
		}
		if p.Penultimate != nil && attempt == attempts-1 {
			p.Penultimate()
		}
	}
	return err
}
