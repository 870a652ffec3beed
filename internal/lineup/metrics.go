package lineup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lineup/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary: показатели конверсии за окно времени.
type Summary struct {
	TotalAttendances       int               `json:"total_attendances"`
	InProgress             int               `json:"in_progress"`
	Sales                  int               `json:"sales"`
	Losses                 int               `json:"losses"`
	ConversionRate         float64           `json:"conversion_rate"`
	TotalSaleValue         decimal.Decimal   `json:"total_sale_value"`
	AverageTicket          decimal.Decimal   `json:"average_ticket"`
	AverageDuration        time.Duration     `json:"-"`
	AverageDurationSeconds float64           `json:"average_duration_seconds"`
	ByStaff                []StaffSummary    `json:"by_staff"`
	LossReasons            []LossReasonCount `json:"loss_reasons"`
}

type StaffSummary struct {
	StaffID          uuid.UUID       `json:"staff_id"`
	TotalAttendances int             `json:"total_attendances"`
	Sales            int             `json:"sales"`
	Losses           int             `json:"losses"`
	ConversionRate   float64         `json:"conversion_rate"`
	TotalSaleValue   decimal.Decimal `json:"total_sale_value"`
}

type LossReasonCount struct {
	LossReasonID uuid.UUID `json:"loss_reason_id"`
	Count        int       `json:"count"`
}

func conversion(sales, losses int) float64 {
	if sales+losses == 0 {
		return 0
	}
	return float64(sales) / float64(sales+losses)
}

// Aggregate считает показатели по обслуживаниям с итогами. Функция чистая.
func Aggregate(attendances []models.Attendance) Summary {
	sum := Summary{
		TotalSaleValue: decimal.Zero,
		AverageTicket:  decimal.Zero,
		ByStaff:        []StaffSummary{},
		LossReasons:    []LossReasonCount{},
	}
	staff := map[uuid.UUID]*StaffSummary{}
	reasons := map[uuid.UUID]int{}
	var totalDuration time.Duration
	finished := 0

	for _, a := range attendances {
		sum.TotalAttendances++
		st, ok := staff[a.StaffID]
		if !ok {
			st = &StaffSummary{StaffID: a.StaffID, TotalSaleValue: decimal.Zero}
			staff[a.StaffID] = st
		}
		st.TotalAttendances++

		if a.Status == models.AttendanceInProgress {
			sum.InProgress++
		}
		if d, ok := a.Duration(); ok {
			totalDuration += d
			finished++
		}
		if a.Outcome == nil {
			continue
		}
		switch a.Outcome.Result {
		case models.OutcomeSale:
			sum.Sales++
			st.Sales++
			if a.Outcome.SaleValue.Valid {
				sum.TotalSaleValue = sum.TotalSaleValue.Add(a.Outcome.SaleValue.Decimal)
				st.TotalSaleValue = st.TotalSaleValue.Add(a.Outcome.SaleValue.Decimal)
			}
		case models.OutcomeLoss:
			sum.Losses++
			st.Losses++
			if a.Outcome.LossReasonID != nil {
				reasons[*a.Outcome.LossReasonID]++
			}
		}
	}

	sum.ConversionRate = conversion(sum.Sales, sum.Losses)
	if sum.Sales > 0 {
		sum.AverageTicket = sum.TotalSaleValue.DivRound(decimal.NewFromInt(int64(sum.Sales)), 2)
	}
	if finished > 0 {
		sum.AverageDuration = totalDuration / time.Duration(finished)
		sum.AverageDurationSeconds = sum.AverageDuration.Seconds()
	}

	for _, st := range staff {
		st.ConversionRate = conversion(st.Sales, st.Losses)
		sum.ByStaff = append(sum.ByStaff, *st)
	}
	sort.Slice(sum.ByStaff, func(i, j int) bool {
		a, b := sum.ByStaff[i], sum.ByStaff[j]
		if a.Sales != b.Sales {
			return a.Sales > b.Sales
		}
		return a.StaffID.String() < b.StaffID.String()
	})

	for id, n := range reasons {
		sum.LossReasons = append(sum.LossReasons, LossReasonCount{LossReasonID: id, Count: n})
	}
	sort.Slice(sum.LossReasons, func(i, j int) bool {
		a, b := sum.LossReasons[i], sum.LossReasons[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.LossReasonID.String() < b.LossReasonID.String()
	})
	return sum
}

// MetricsQuery задаёт окно по времени начала обслуживания: [From, To).
// Нужен SessionID или StoreID; нулевые границы окна не ограничивают выборку.
type MetricsQuery struct {
	SessionID uuid.UUID
	StoreID   uuid.UUID
	From      time.Time
	To        time.Time
}

// Metrics пересчитывает показатели при каждом запросе.
type Metrics struct {
	*core
}

func (m *Metrics) Compute(ctx context.Context, q MetricsQuery) (Summary, error) {
	if q.SessionID == uuid.Nil && q.StoreID == uuid.Nil {
		return Summary{}, fmt.Errorf("%w: session or store is required", ErrInvalidInput)
	}
	if !q.From.IsZero() && !q.To.IsZero() && !q.From.Before(q.To) {
		return Summary{}, fmt.Errorf("%w: empty time window", ErrInvalidInput)
	}

	db := m.db.WithContext(ctx)
	if q.SessionID != uuid.Nil {
		if err := sessionExists(db, q.SessionID); err != nil {
			return Summary{}, classify("compute metrics", err)
		}
	}

	query := filterAttendances(db.Preload("Outcome"), AttendanceFilter{SessionID: q.SessionID, From: q.From, To: q.To})
	if q.StoreID != uuid.Nil {
		query = query.Where("store_id = ?", q.StoreID)
	}
	var list []models.Attendance
	if err := query.Find(&list).Error; err != nil {
		return Summary{}, classify("compute metrics", err)
	}
	return Aggregate(list), nil
}
