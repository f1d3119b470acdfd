package club

// Finances tracks the club balance and queued outgoings.
type Finances struct {
	Balance int64

	pendingSalary int64
}

// NewFinances creates a finance ledger with a starting balance.
func NewFinances(balance int64) Finances {
	return Finances{Balance: balance}
}

// PushSalary queues a salary amount to settle on the next finance pass.
func (f *Finances) PushSalary(amount int64) {
	f.pendingSalary += amount
}

// PendingSalary returns the queued, unsettled salary total.
func (f *Finances) PendingSalary() int64 {
	return f.pendingSalary
}

// FinanceResult reports one finance pass.
type FinanceResult struct {
	Paid    int64
	Balance int64
}

// Simulate settles queued salaries against the balance.
func (f *Finances) Simulate() FinanceResult {
	paid := f.pendingSalary
	f.Balance -= paid
	f.pendingSalary = 0
	return FinanceResult{Paid: paid, Balance: f.Balance}
}

// Board tracks how the directors rate the current run of results.
type Board struct {
	Confidence float64
}

// NewBoard starts at half confidence.
func NewBoard() Board {
	return Board{Confidence: 0.5}
}

// BoardResult reports the board's confidence after reviewing results.
type BoardResult struct {
	Confidence float64
}

// Simulate nudges confidence from the day's team output. Shots read as
// intent; conceding none of the game through tackles reads as control.
func (b *Board) Simulate(teams []*TeamResult) BoardResult {
	for _, tr := range teams {
		if tr.Shots > tr.Tackles {
			b.Confidence += 0.01
		} else if tr.Tackles > tr.Shots {
			b.Confidence -= 0.01
		}
	}
	if b.Confidence > 1 {
		b.Confidence = 1
	}
	if b.Confidence < 0 {
		b.Confidence = 0
	}
	return BoardResult{Confidence: b.Confidence}
}

// Academy develops youth intake over time.
type Academy struct {
	Level    int
	Progress float64
}

// NewAcademy creates an academy at the given level.
func NewAcademy(level int) Academy {
	return Academy{Level: level}
}

// AcademyResult reports academy development for one pass.
type AcademyResult struct {
	Level     int
	Graduated bool
}

// Simulate accrues progress; a full bar raises the level.
func (a *Academy) Simulate() AcademyResult {
	a.Progress += float64(a.Level) / 1000
	if a.Progress >= 1 {
		a.Progress = 0
		a.Level++
		return AcademyResult{Level: a.Level, Graduated: true}
	}
	return AcademyResult{Level: a.Level}
}
