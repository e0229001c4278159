package a

import "time"

func leak(d time.Duration) {
	t := time.NewTicker(d) // want `time.NewTicker result assigned to t is never stopped`
	<-t.C
}

func leakTimer(d time.Duration) {
	var tm = time.NewTimer(d) // want `time.NewTimer result assigned to tm is never stopped`
	tm.Reset(d)
	<-tm.C
}

func stopped(d time.Duration) {
	t := time.NewTicker(d)
	defer t.Stop()
	<-t.C
}

func returned(d time.Duration) *time.Ticker {
	t := time.NewTicker(d)
	return t
}

func consume(*time.Timer) {}

func passed(d time.Duration) {
	t := time.NewTimer(d)
	consume(t)
}

type holder struct{ t *time.Ticker }

func stored(d time.Duration) holder {
	t := time.NewTicker(d)
	return holder{t: t}
}

func closure(d time.Duration) {
	t := time.NewTicker(d)
	go func() {
		defer t.Stop()
		<-t.C
	}()
}

func inline(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

func multi(d time.Duration) {
	a, b := time.NewTicker(d), time.NewTimer(d) // want `time.NewTimer result assigned to b is never stopped`
	a.Stop()
	<-b.C
}

func reassigned(d time.Duration) {
	var t *time.Ticker
	t = time.NewTicker(d) // want `time.NewTicker result assigned to t is never stopped`
	<-t.C
}
