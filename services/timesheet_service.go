package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fieldserve/fieldserve-app/models"
	"github.com/fieldserve/fieldserve-app/utils"
)

// TimesheetService turns logged quantities into persisted work-log entries
// and produces the weekly totals shown in the engineer portal.
type TimesheetService struct {
	DB *gorm.DB
}

func NewTimesheetService(db *gorm.DB) *TimesheetService {
	return &TimesheetService{DB: db}
}

// Materialize produces one WorkLogEntry per gang engineer with a positive
// share for a single (day, product, quantity) line. A quantity of zero or an
// unselected rate-card product yields no entries. Gang engineers whose
// engineer record is missing from engineers are excluded rather than treated
// as an error. Calling Materialize twice with the same inputs produces two
// independent entry sets; duplicate submissions are not deduplicated here.
func Materialize(
	date string,
	workLog models.WorkLog,
	product models.WorkLogProduct,
	rateCardProductID uint,
	quantity float64,
	gangEngineers []models.GangEngineer,
	engineers map[uint]models.Engineer,
) []models.WorkLogEntry {
	if quantity <= 0 || rateCardProductID == 0 {
		return nil
	}

	shares := make([]EngineerShare, 0, len(gangEngineers))
	memberByEngineer := make(map[uint]models.GangEngineer, len(gangEngineers))
	for _, ge := range gangEngineers {
		shares = append(shares, EngineerShare{EngineerID: ge.EngineerID, Share: ge.EngineerShare})
		memberByEngineer[ge.EngineerID] = ge
	}

	now := time.Now()
	var entries []models.WorkLogEntry
	for _, eq := range Apportion(quantity, shares) {
		eng, ok := engineers[eq.EngineerID]
		if !ok {
			continue
		}
		ge := memberByEngineer[eq.EngineerID]
		entries = append(entries, models.WorkLogEntry{
			Name:                      fmt.Sprintf("%s - %s", eng.Name, product.Name),
			Date:                      date,
			EngineerID:                ge.EngineerID,
			GangID:                    workLog.GangID,
			GangEngineerID:            ge.ID,
			WorkLogID:                 workLog.ID,
			CustomerRateCardProductID: rateCardProductID,
			UnitSale:                  eq.Quantity,
			UnitWage:                  eq.Quantity,
			IsApproved:                false,
			IsDeleted:                 false,
			CreatedAt:                 now,
			ModifiedAt:                now,
		})
	}
	return entries
}

type draftKey struct {
	date             string
	workLogProductID uint
}

type draftRow struct {
	quantity          float64
	rateCardProductID uint
}

// WeekDraft collects one week of quantities before submission, keyed by
// (date, work-log product). Submit is the single boundary at which entries
// are materialized and persisted.
type WeekDraft struct {
	WorkLogID uint
	WeekStart string

	rows  map[draftKey]draftRow
	order []draftKey
}

// NewWeekDraft starts an empty draft. weekStart is normalized to the Monday
// of its week.
func NewWeekDraft(workLogID uint, weekStart string) (*WeekDraft, error) {
	monday, err := MondayOf(weekStart)
	if err != nil {
		return nil, utils.NewValidationError("week_start", "must be a YYYY-MM-DD date")
	}
	return &WeekDraft{
		WorkLogID: workLogID,
		WeekStart: monday,
		rows:      make(map[draftKey]draftRow),
	}, nil
}

func (d *WeekDraft) row(date string, workLogProductID uint) draftKey {
	k := draftKey{date: date, workLogProductID: workLogProductID}
	if _, ok := d.rows[k]; !ok {
		d.rows[k] = draftRow{}
		d.order = append(d.order, k)
	}
	return k
}

// SetQuantity records the quantity logged for a product on a day.
func (d *WeekDraft) SetQuantity(date string, workLogProductID uint, quantity float64) {
	k := d.row(date, workLogProductID)
	r := d.rows[k]
	r.quantity = quantity
	d.rows[k] = r
}

// SetRateCardProduct records which rate-card product prices the row.
func (d *WeekDraft) SetRateCardProduct(date string, workLogProductID uint, rateCardProductID uint) {
	k := d.row(date, workLogProductID)
	r := d.rows[k]
	r.rateCardProductID = rateCardProductID
	d.rows[k] = r
}

// Submit materializes every draft row against the work log's gang and
// persists the resulting entries in one batch. Every row date must fall
// within the draft's week; rows with zero quantity or no selected rate-card
// product contribute nothing. Submitting the same draft twice creates a
// second, independent entry set.
func (ts *TimesheetService) Submit(draft *WeekDraft) ([]models.WorkLogEntry, error) {
	days, err := WeekDays(draft.WeekStart)
	if err != nil {
		return nil, utils.NewValidationError("week_start", "must be a YYYY-MM-DD date")
	}
	inWeek := make(map[string]bool, len(days))
	for _, day := range days {
		inWeek[day] = true
	}
	for _, k := range draft.order {
		if !inWeek[k.date] {
			return nil, utils.NewValidationError("date",
				fmt.Sprintf("%q is not a date in the week beginning %s", k.date, draft.WeekStart))
		}
	}

	var workLog models.WorkLog
	if err := ts.DB.Where("is_deleted = ?", false).First(&workLog, draft.WorkLogID).Error; err != nil {
		return nil, utils.NewNotFoundError("work log", draft.WorkLogID)
	}

	gangEngineers, engineers, err := ts.loadGang(workLog.GangID)
	if err != nil {
		return nil, err
	}

	var products []models.WorkLogProduct
	if err := ts.DB.Where("worklog_id = ? AND is_deleted = ?", workLog.ID, false).Find(&products).Error; err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.WorkLogProduct, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	var entries []models.WorkLogEntry
	for _, k := range draft.order {
		r := draft.rows[k]
		product, ok := productByID[k.workLogProductID]
		if !ok {
			// Unknown product ids are excluded, not failed.
			continue
		}
		entries = append(entries,
			Materialize(k.date, workLog, product, r.rateCardProductID, r.quantity, gangEngineers, engineers)...)
	}

	if len(entries) == 0 {
		return nil, utils.NewValidationError("quantity", "at least one positive quantity with a selected rate card product is required")
	}

	if err := ts.DB.Create(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (ts *TimesheetService) loadGang(gangID uint) ([]models.GangEngineer, map[uint]models.Engineer, error) {
	var gangEngineers []models.GangEngineer
	if err := ts.DB.Where("gang_id = ? AND is_deleted = ?", gangID, false).
		Order("id").Find(&gangEngineers).Error; err != nil {
		return nil, nil, err
	}

	var engineerRows []models.Engineer
	if err := ts.DB.Where("is_deleted = ?", false).Find(&engineerRows).Error; err != nil {
		return nil, nil, err
	}
	engineers := make(map[uint]models.Engineer, len(engineerRows))
	for _, e := range engineerRows {
		engineers[e.ID] = e
	}
	return gangEngineers, engineers, nil
}

// DaySummary is one day's wage total within a week.
type DaySummary struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// EngineerSummary is one engineer's payout preview for the week.
type EngineerSummary struct {
	EngineerID uint    `json:"engineer_id"`
	Name       string  `json:"name"`
	Share      float64 `json:"share"`
	Total      float64 `json:"total"`
}

// WeekSummaryResult carries day totals, the week grand total, and each
// engineer's share of it.
type WeekSummaryResult struct {
	WorkLogID        uint              `json:"worklog_id"`
	WeekStart        string            `json:"week_start"`
	Days             []DaySummary      `json:"days"`
	WeekTotal        float64           `json:"week_total"`
	WeekTotalDisplay string            `json:"week_total_display"`
	Engineers        []EngineerSummary `json:"engineers"`
}

// WeekSummary totals the persisted entries of one work log for the week
// beginning at weekStart (normalized to its Monday). Wage totals use each
// entry's apportioned quantity at the rate card's engineer rate; engineer
// payouts are each share applied to the week grand total.
func (ts *TimesheetService) WeekSummary(workLogID uint, weekStart string) (*WeekSummaryResult, error) {
	monday, err := MondayOf(weekStart)
	if err != nil {
		return nil, utils.NewValidationError("week_start", "must be a YYYY-MM-DD date")
	}
	days, err := WeekDays(monday)
	if err != nil {
		return nil, utils.NewValidationError("week_start", "must be a YYYY-MM-DD date")
	}

	var workLog models.WorkLog
	if err := ts.DB.Where("is_deleted = ?", false).First(&workLog, workLogID).Error; err != nil {
		return nil, utils.NewNotFoundError("work log", workLogID)
	}

	var entries []models.WorkLogEntry
	if err := ts.DB.Where("worklog_id = ? AND is_deleted = ? AND date IN ?", workLogID, false, days).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	var rateCardProducts []models.CustomerRateCardProduct
	if err := ts.DB.Where("is_deleted = ?", false).Find(&rateCardProducts).Error; err != nil {
		return nil, err
	}
	rateByID := make(map[uint]float64, len(rateCardProducts))
	for _, rcp := range rateCardProducts {
		rateByID[rcp.ID] = rcp.EngineerRate
	}

	linesByDay := make(map[string][]EntryLine)
	for _, e := range entries {
		linesByDay[e.Date] = append(linesByDay[e.Date], EntryLine{
			Quantity: e.UnitWage,
			Rate:     rateByID[e.CustomerRateCardProductID],
		})
	}

	result := &WeekSummaryResult{WorkLogID: workLogID, WeekStart: monday}
	dayTotals := make([]float64, 0, len(days))
	for _, day := range days {
		total := DayTotal(linesByDay[day])
		dayTotals = append(dayTotals, total)
		result.Days = append(result.Days, DaySummary{Date: day, Total: total})
	}
	result.WeekTotal = WeekTotal(dayTotals)
	result.WeekTotalDisplay = utils.FormatCurrencyGBP(result.WeekTotal)

	gangEngineers, engineers, err := ts.loadGang(workLog.GangID)
	if err != nil {
		return nil, err
	}
	for _, ge := range gangEngineers {
		eng, ok := engineers[ge.EngineerID]
		if !ok {
			continue
		}
		result.Engineers = append(result.Engineers, EngineerSummary{
			EngineerID: ge.EngineerID,
			Name:       eng.Name,
			Share:      ge.EngineerShare,
			Total:      EngineerTotal(ge.EngineerShare, result.WeekTotal),
		})
	}
	return result, nil
}
