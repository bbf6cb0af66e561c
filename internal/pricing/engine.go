package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// Engine prices bookings against a fixed rate card. It is safe for concurrent use.
type Engine struct {
	rates Rates
}

func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

func (e *Engine) Rates() Rates {
	return e.rates
}

// plan is the priced shape of a request. classify picks exactly one.
type plan interface {
	isPlan()
}

type (
	// noChargePlan covers maintenance windows and court holds.
	noChargePlan struct{ kind booking.Type }
	youthPlan    struct{}
	teamFlatPlan struct{ courts int }
	// contractorPlan carries the hours used to pick the tier.
	contractorPlan struct{ tierHours float64 }
	tournamentPlan struct{}
	// blockPlan is open play, and the fallback for anything unmatched.
	blockPlan struct{ fallback string }
)

func (noChargePlan) isPlan()   {}
func (youthPlan) isPlan()      {}
func (teamFlatPlan) isPlan()   {}
func (contractorPlan) isPlan() {}
func (tournamentPlan) isPlan() {}
func (blockPlan) isPlan()      {}

// classify applies the decision order; the first matching rule wins.
func classify(req booking.PriceRequest) plan {
	switch {
	case req.Type.Blocking():
		return noChargePlan{kind: req.Type}
	case req.Context.IsYouth:
		return youthPlan{}
	case req.Type.IsTeam():
		courts := 0
		if req.Context.CourtCount != nil {
			courts = *req.Context.CourtCount
		}
		if courts >= team3Courts {
			return teamFlatPlan{courts: courts}
		}
		if !req.Type.Valid() {
			return blockPlan{fallback: fmt.Sprintf("unrecognized booking type %q", req.Type)}
		}
		return blockPlan{fallback: "team booking under 3 courts"}
	case req.Type == booking.TypeContractor:
		hours := req.Interval.Hours()
		if req.Context.TotalHours != nil {
			hours = *req.Context.TotalHours
		}
		return contractorPlan{tierHours: hours}
	case req.Type == booking.TypeTournament:
		return tournamentPlan{}
	case req.Type == booking.TypeOpen:
		return blockPlan{}
	default:
		return blockPlan{fallback: fmt.Sprintf("unrecognized booking type %q", req.Type)}
	}
}

// Quote prices req. An unknown type is never an error: it is priced as open
// play and flagged in the description for review.
func (e *Engine) Quote(req booking.PriceRequest) (booking.RateQuote, error) {
	if err := req.Interval.Validate(); err != nil {
		return booking.RateQuote{}, err
	}

	prime := timegrid.IsPrimeTime(req.Date, req.Interval.Start)
	duration := req.Interval.Hours()

	q := booking.RateQuote{
		IsPrimeTime:   prime,
		DurationHours: duration,
	}

	switch p := classify(req).(type) {
	case noChargePlan:
		q.RatePerBlock = decimal.Zero
		q.Total = decimal.Zero
		if p.kind == booking.TypeHold {
			q.Description = "Court hold - no charge"
		} else {
			q.Description = "Maintenance - no charge"
		}

	case youthPlan:
		q.RatePerBlock = decimal.Zero
		q.Total = decimal.Zero
		q.Description = "Youth free play"

	case teamFlatPlan:
		flat := e.rates.Team3
		label := "3+"
		if p.courts >= team5Courts {
			flat = e.rates.Team5
			label = "5+"
		}
		q.RatePerBlock = flat
		q.Total = flat
		q.Description = fmt.Sprintf("Team rate (%s courts) - flat %s", label, money(flat))

	case contractorPlan:
		rate, label := e.standardRate(prime)
		switch {
		case p.tierHours >= group50Hours:
			rate, label = e.rates.Group50, "50+ hrs"
		case p.tierHours >= group10Hours:
			rate, label = e.rates.Group10, "10+ hrs"
		}
		q.RatePerBlock = rate
		q.Total = rate.Mul(decimal.NewFromFloat(duration)).Round(2)
		q.Description = fmt.Sprintf("Contractor rate (%s) - %s/hr x %s hrs",
			label, money(rate), decimal.NewFromFloat(duration).StringFixed(2))

	case tournamentPlan:
		q.RatePerBlock = decimal.Zero
		q.Total = decimal.Zero
		q.Description = "Tournament - manual/contract pricing"

	case blockPlan:
		rate, label := e.standardRate(prime)
		q.RatePerBlock = rate
		q.Total = rate
		q.Description = fmt.Sprintf("Open play (%s) - %s per block", label, money(rate))
		if p.fallback != "" {
			q.Description = fmt.Sprintf("%s; %s, open play rate applied - review", q.Description, p.fallback)
		}
		if extra := duration - blockHours; extra > 0 {
			q.ExtraHours = extra
			q.ExtraAmount = rate.Mul(decimal.NewFromFloat(extra)).
				Div(decimal.NewFromFloat(blockHours)).Round(2)
		}

	default:
		return booking.RateQuote{}, fmt.Errorf("unhandled pricing plan %T", p)
	}

	q.BlendedTotal = q.Total.Add(q.ExtraAmount)
	return q, nil
}

func (e *Engine) standardRate(prime bool) (decimal.Decimal, string) {
	if prime {
		return e.rates.Prime, "prime"
	}
	return e.rates.NonPrime, "non-prime"
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
