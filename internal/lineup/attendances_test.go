package lineup

import (
	"testing"
	"time"

	"lineup/internal/models"
	"lineup/internal/notify"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Первым обслуживает A; после продажи A уходит в конец, первым становится B.
func TestServeHeadAndRequeueAtTail(t *testing.T) {
	f := newFixture(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	members := f.enqueue(a, b, c)

	att, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "Maria")
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceInProgress, att.Status)
	assert.Equal(t, a, att.StaffID)
	assert.Equal(t, f.store, att.StoreID)
	assert.Equal(t, "Maria", att.CustomerName)
	assert.Equal(t, models.MemberInAttendance, f.member(members[0].ID).Status)
	assert.Equal(t, []uuid.UUID{b, c}, f.order())
	assert.Equal(t, 1, f.member(members[1].ID).Position)
	f.assertConsistent()

	done, err := f.svc.Attendances.Finalize(f.ctx, att.ID, sale("150.50"))
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceFinished, done.Status)
	require.NotNil(t, done.EndedAt)
	d, ok := done.Duration()
	require.True(t, ok)
	assert.Equal(t, time.Minute, d)
	require.NotNil(t, done.Outcome)
	assert.True(t, done.Outcome.SaleValue.Decimal.Equal(decimal.RequireFromString("150.50")))

	requeued := f.member(members[0].ID)
	assert.Equal(t, models.MemberAvailable, requeued.Status)
	assert.Equal(t, 3, requeued.Position)
	assert.Equal(t, []uuid.UUID{b, c, a}, f.order())
	f.assertConsistent()

	summary, err := f.svc.Metrics.Compute(f.ctx, MetricsQuery{SessionID: f.session.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sales)
	assert.Equal(t, 1.0, summary.ConversionRate)
	assert.True(t, summary.TotalSaleValue.Equal(decimal.RequireFromString("150.50")))
}

func TestRequeuePositionIsPreviousMaxPlusOne(t *testing.T) {
	f := newFixture(t)
	members := f.enqueue(uuid.New(), uuid.New(), uuid.New(), uuid.New())

	att, err := f.svc.Attendances.Start(f.ctx, members[1].ID, "")
	require.NoError(t, err)
	require.NoError(t, f.svc.Queue.DequeueAvailable(f.ctx, members[3].ID))

	before, err := f.svc.Queue.ListAvailable(f.ctx, f.session.ID)
	require.NoError(t, err)
	last := before[len(before)-1].Position

	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("10"))
	require.NoError(t, err)
	assert.Equal(t, last+1, f.member(members[1].ID).Position)
}

func TestStartRequiresAvailableMember(t *testing.T) {
	f := newFixture(t)
	members := f.enqueue(uuid.New(), uuid.New(), uuid.New())

	_, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)
	_, err = f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	assert.ErrorIs(t, err, ErrMemberBusy)

	require.NoError(t, f.svc.Queue.Pause(f.ctx, members[1].ID))
	_, err = f.svc.Attendances.Start(f.ctx, members[1].ID, "")
	assert.ErrorIs(t, err, ErrMemberBusy)

	_, err = f.svc.Attendances.Start(f.ctx, uuid.New(), "")
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// не первый в очереди тоже может начать обслуживание
	_, err = f.svc.Attendances.Start(f.ctx, members[2].ID, "")
	assert.NoError(t, err)
	f.assertConsistent()
}

func TestFinalizeTwice(t *testing.T) {
	f := newFixture(t)
	m := f.enqueue(uuid.New())[0]
	att, err := f.svc.Attendances.Start(f.ctx, m.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("99.90"))
	require.NoError(t, err)
	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("10"))
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	var outcomes int64
	require.NoError(t, f.db.Model(&models.AttendanceOutcome{}).Where("attendance_id = ?", att.ID).Count(&outcomes).Error)
	assert.Equal(t, int64(1), outcomes)
	assert.Equal(t, 1, f.member(m.ID).Position)

	_, err = f.svc.Attendances.Finalize(f.ctx, uuid.New(), sale("10"))
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestFinalizeLoss(t *testing.T) {
	f := newFixture(t)
	global := f.lossReason("Preço", nil, true)
	own := f.lossReason("Sem estoque", &f.store, true)
	members := f.enqueue(uuid.New(), uuid.New())

	for i, reason := range []models.LossReason{global, own} {
		att, err := f.svc.Attendances.Start(f.ctx, members[i].ID, "")
		require.NoError(t, err)
		done, err := f.svc.Attendances.Finalize(f.ctx, att.ID, loss(reason.ID))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeLoss, done.Outcome.Result)
		require.NotNil(t, done.Outcome.LossReasonID)
		assert.Equal(t, reason.ID, *done.Outcome.LossReasonID)
		assert.False(t, done.Outcome.SaleValue.Valid)
	}
	f.assertConsistent()
}

func TestFinalizeRejectsInconsistentOutcome(t *testing.T) {
	f := newFixture(t)
	reason := f.lossReason("Preço", nil, true)
	inactive := f.lossReason("Antigo", nil, false)
	otherStore := uuid.New()
	foreign := f.lossReason("Outra loja", &otherStore, true)
	zero := decimal.Zero
	negative := decimal.RequireFromString("-5")
	value := decimal.RequireFromString("10")

	cases := map[string]OutcomeInput{
		"sale without value":     {Result: models.OutcomeSale},
		"sale with zero value":   {Result: models.OutcomeSale, SaleValue: &zero},
		"sale with negative":     {Result: models.OutcomeSale, SaleValue: &negative},
		"sale with loss reason":  {Result: models.OutcomeSale, SaleValue: &value, LossReasonID: &reason.ID},
		"loss without reason":    {Result: models.OutcomeLoss},
		"loss with sale value":   {Result: models.OutcomeLoss, SaleValue: &value, LossReasonID: &reason.ID},
		"loss with inactive":     loss(inactive.ID),
		"loss with other store":  loss(foreign.ID),
		"loss with unknown":      loss(uuid.New()),
		"unknown result":         {Result: "maybe"},
	}

	m := f.enqueue(uuid.New())[0]
	att, err := f.svc.Attendances.Start(f.ctx, m.ID, "")
	require.NoError(t, err)

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Attendances.Finalize(f.ctx, att.ID, in)
			assert.ErrorIs(t, err, ErrInvalidOutcome)
		})
	}

	got, err := f.svc.Attendances.Get(f.ctx, att.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceInProgress, got.Status)
	assert.Nil(t, got.Outcome)
	assert.Equal(t, models.MemberInAttendance, f.member(m.ID).Status)
}

func TestLossWithZeroSaleValueIsAccepted(t *testing.T) {
	f := newFixture(t)
	reason := f.lossReason("Preço", nil, true)
	m := f.enqueue(uuid.New())[0]
	att, err := f.svc.Attendances.Start(f.ctx, m.ID, "")
	require.NoError(t, err)

	in := loss(reason.ID)
	zero := decimal.Zero
	in.SaleValue = &zero
	done, err := f.svc.Attendances.Finalize(f.ctx, att.ID, in)
	require.NoError(t, err)
	assert.False(t, done.Outcome.SaleValue.Valid)
}

func TestTransferToQueuedStaff(t *testing.T) {
	f := newFixture(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	members := f.enqueue(a, b, c)
	att, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)

	moved, err := f.svc.Attendances.Transfer(f.ctx, att.ID, b, "especialista")
	require.NoError(t, err)
	assert.Equal(t, b, moved.StaffID)
	require.NotNil(t, moved.MemberID)
	assert.Equal(t, members[1].ID, *moved.MemberID)

	assert.Equal(t, models.MemberPaused, f.member(members[0].ID).Status)
	assert.Equal(t, models.MemberInAttendance, f.member(members[1].ID).Status)
	assert.Equal(t, []uuid.UUID{c}, f.order())
	f.assertConsistent()

	var record models.AttendanceTransfer
	require.NoError(t, f.db.Where("attendance_id = ?", att.ID).First(&record).Error)
	assert.Equal(t, a, record.FromStaffID)
	assert.Equal(t, b, record.ToStaffID)
	assert.Equal(t, "especialista", record.Reason)

	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("80"))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c, b}, f.order())
	assert.Equal(t, models.MemberPaused, f.member(members[0].ID).Status)
	f.assertConsistent()
}

func TestTransferBackRestoresIntermediateSlot(t *testing.T) {
	f := newFixture(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	members := f.enqueue(a, b, c)
	att, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)

	_, err = f.svc.Attendances.Transfer(f.ctx, att.ID, b, "")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c}, f.order())

	back, err := f.svc.Attendances.Transfer(f.ctx, att.ID, a, "")
	require.NoError(t, err)
	assert.Equal(t, a, back.StaffID)
	assert.Equal(t, models.MemberInAttendance, f.member(members[0].ID).Status)
	assert.Equal(t, models.MemberAvailable, f.member(members[1].ID).Status)
	assert.Equal(t, []uuid.UUID{c, b}, f.order())
	f.assertConsistent()

	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("15"))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c, b, a}, f.order())
	f.assertConsistent()
}

func TestTransferAwayFromPausedTargetKeepsPause(t *testing.T) {
	f := newFixture(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	members := f.enqueue(a, b, c)
	require.NoError(t, f.svc.Queue.Pause(f.ctx, members[1].ID))
	att, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)

	_, err = f.svc.Attendances.Transfer(f.ctx, att.ID, b, "")
	require.NoError(t, err)
	_, err = f.svc.Attendances.Transfer(f.ctx, att.ID, c, "")
	require.NoError(t, err)

	assert.Equal(t, models.MemberPaused, f.member(members[0].ID).Status)
	assert.Equal(t, models.MemberPaused, f.member(members[1].ID).Status)
	assert.Equal(t, models.MemberInAttendance, f.member(members[2].ID).Status)
	assert.Empty(t, f.order())
	f.assertConsistent()

	for staff, want := range map[uuid.UUID]models.MemberStatus{b: models.MemberPaused, c: models.MemberAvailable} {
		var record models.AttendanceTransfer
		require.NoError(t, f.db.Where("attendance_id = ? AND to_staff_id = ?", att.ID, staff).First(&record).Error)
		assert.Equal(t, want, record.ToMemberStatus)
	}
}

func TestTransferToStaffWithoutSlot(t *testing.T) {
	f := newFixture(t)
	a, b := uuid.New(), uuid.New()
	members := f.enqueue(a, b)
	att, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)

	outsider := uuid.New()
	moved, err := f.svc.Attendances.Transfer(f.ctx, att.ID, outsider, "")
	require.NoError(t, err)
	assert.Equal(t, outsider, moved.StaffID)
	assert.Nil(t, moved.MemberID)
	f.assertConsistent()

	done, err := f.svc.Attendances.Finalize(f.ctx, att.ID, sale("20"))
	require.NoError(t, err)
	assert.Equal(t, outsider, done.StaffID)
	assert.Equal(t, []uuid.UUID{b}, f.order())
	assert.Equal(t, models.MemberPaused, f.member(members[0].ID).Status)
}

func TestTransferErrors(t *testing.T) {
	f := newFixture(t)
	a, b := uuid.New(), uuid.New()
	members := f.enqueue(a, b)
	first, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)
	_, err = f.svc.Attendances.Start(f.ctx, members[1].ID, "")
	require.NoError(t, err)

	_, err = f.svc.Attendances.Transfer(f.ctx, first.ID, b, "")
	assert.ErrorIs(t, err, ErrMemberBusy)

	_, err = f.svc.Attendances.Transfer(f.ctx, first.ID, a, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Attendances.Transfer(f.ctx, uuid.New(), b, "")
	assert.ErrorIs(t, err, ErrAttendanceNotFound)

	_, err = f.svc.Attendances.Finalize(f.ctx, first.ID, sale("5"))
	require.NoError(t, err)
	_, err = f.svc.Attendances.Transfer(f.ctx, first.ID, uuid.New(), "")
	assert.ErrorIs(t, err, ErrAttendanceNotInProgress)
}

func TestEditFinishedAttendance(t *testing.T) {
	f := newFixture(t)
	reason := f.lossReason("Preço", nil, true)
	m := f.enqueue(uuid.New())[0]
	att, err := f.svc.Attendances.Start(f.ctx, m.ID, "")
	require.NoError(t, err)
	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("100"))
	require.NoError(t, err)
	_, err = f.svc.Attendances.LinkSaleRecord(f.ctx, att.ID, "PDV-1")
	require.NoError(t, err)
	positionBefore := f.member(m.ID).Position

	name := "João"
	started := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ended := time.Date(2026, 3, 14, 9, 20, 0, 0, time.UTC)
	lossOutcome := loss(reason.ID)
	edited, err := f.svc.Attendances.Edit(f.ctx, att.ID, AttendancePatch{
		CustomerName: &name,
		StartedAt:    &started,
		EndedAt:      &ended,
		Outcome:      &lossOutcome,
	})
	require.NoError(t, err)

	assert.Equal(t, "João", edited.CustomerName)
	assert.WithinDuration(t, started, edited.StartedAt, 0)
	d, ok := edited.Duration()
	require.True(t, ok)
	assert.Equal(t, 20*time.Minute, d)
	require.NotNil(t, edited.Outcome)
	assert.Equal(t, models.OutcomeLoss, edited.Outcome.Result)
	assert.False(t, edited.Outcome.SaleValue.Valid)
	assert.Nil(t, edited.Outcome.SaleRecordID)
	assert.Equal(t, positionBefore, f.member(m.ID).Position)
}

func TestEditValidation(t *testing.T) {
	f := newFixture(t)
	m := f.enqueue(uuid.New())[0]
	att, err := f.svc.Attendances.Start(f.ctx, m.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Attendances.Edit(f.ctx, att.ID, AttendancePatch{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	ended := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	_, err = f.svc.Attendances.Edit(f.ctx, att.ID, AttendancePatch{EndedAt: &ended})
	assert.ErrorIs(t, err, ErrInvalidInput)

	name := "Ana"
	edited, err := f.svc.Attendances.Edit(f.ctx, att.ID, AttendancePatch{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana", edited.CustomerName)
	assert.Equal(t, models.AttendanceInProgress, edited.Status)

	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("10"))
	require.NoError(t, err)

	early := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	_, err = f.svc.Attendances.Edit(f.ctx, att.ID, AttendancePatch{EndedAt: &early})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := OutcomeInput{Result: models.OutcomeLoss}
	_, err = f.svc.Attendances.Edit(f.ctx, att.ID, AttendancePatch{Outcome: &bad})
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	_, err = f.svc.Attendances.Edit(f.ctx, uuid.New(), AttendancePatch{CustomerName: &name})
	assert.ErrorIs(t, err, ErrAttendanceNotFound)
}

func TestCreateManual(t *testing.T) {
	f := newFixture(t)
	queued := f.enqueue(uuid.New())[0]
	staff := uuid.New()
	started := time.Date(2026, 3, 13, 15, 0, 0, 0, time.UTC)

	att, err := f.svc.Attendances.CreateManual(f.ctx, ManualAttendanceInput{
		SessionID:    f.session.ID,
		StaffID:      staff,
		CustomerName: " Carla ",
		StartedAt:    started,
		EndedAt:      started.Add(12 * time.Minute),
		Outcome:      sale("42.00"),
	})
	require.NoError(t, err)
	assert.True(t, att.Manual)
	assert.Nil(t, att.MemberID)
	assert.Equal(t, "Carla", att.CustomerName)
	assert.Equal(t, models.AttendanceFinished, att.Status)
	assert.Equal(t, f.store, att.StoreID)

	got, err := f.svc.Attendances.Get(f.ctx, att.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Outcome)
	assert.True(t, got.Outcome.SaleValue.Decimal.Equal(decimal.NewFromInt(42)))
	d, ok := got.Duration()
	require.True(t, ok)
	assert.Equal(t, 12*time.Minute, d)

	assert.Equal(t, 1, f.member(queued.ID).Position)
	f.assertConsistent()
}

func TestCreateManualValidation(t *testing.T) {
	f := newFixture(t)
	started := time.Date(2026, 3, 13, 15, 0, 0, 0, time.UTC)
	valid := ManualAttendanceInput{
		SessionID: f.session.ID,
		StaffID:   uuid.New(),
		StartedAt: started,
		EndedAt:   started.Add(time.Minute),
		Outcome:   sale("1"),
	}

	in := valid
	in.EndedAt = started.Add(-time.Minute)
	_, err := f.svc.Attendances.CreateManual(f.ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = valid
	in.StaffID = uuid.Nil
	_, err = f.svc.Attendances.CreateManual(f.ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = valid
	in.StartedAt = time.Time{}
	_, err = f.svc.Attendances.CreateManual(f.ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	in = valid
	in.Outcome = OutcomeInput{Result: models.OutcomeSale}
	_, err = f.svc.Attendances.CreateManual(f.ctx, in)
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	in = valid
	in.SessionID = uuid.New()
	_, err = f.svc.Attendances.CreateManual(f.ctx, in)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.Attendance{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLinkSaleRecord(t *testing.T) {
	f := newFixture(t)
	reason := f.lossReason("Preço", nil, true)
	members := f.enqueue(uuid.New(), uuid.New())

	won, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)
	lost, err := f.svc.Attendances.Start(f.ctx, members[1].ID, "")
	require.NoError(t, err)

	_, err = f.svc.Attendances.LinkSaleRecord(f.ctx, won.ID, "PDV-77")
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	_, err = f.svc.Attendances.Finalize(f.ctx, won.ID, sale("300"))
	require.NoError(t, err)
	_, err = f.svc.Attendances.Finalize(f.ctx, lost.ID, loss(reason.ID))
	require.NoError(t, err)

	linked, err := f.svc.Attendances.LinkSaleRecord(f.ctx, won.ID, " PDV-77 ")
	require.NoError(t, err)
	require.NotNil(t, linked.Outcome.SaleRecordID)
	assert.Equal(t, "PDV-77", *linked.Outcome.SaleRecordID)

	_, err = f.svc.Attendances.LinkSaleRecord(f.ctx, lost.ID, "PDV-78")
	assert.ErrorIs(t, err, ErrInvalidOutcome)

	_, err = f.svc.Attendances.LinkSaleRecord(f.ctx, won.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListInProgressAndFilter(t *testing.T) {
	f := newFixture(t)
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	members := f.enqueue(a, b, c)

	first, err := f.svc.Attendances.Start(f.ctx, members[2].ID, "")
	require.NoError(t, err)
	second, err := f.svc.Attendances.Start(f.ctx, members[0].ID, "")
	require.NoError(t, err)
	third, err := f.svc.Attendances.Start(f.ctx, members[1].ID, "")
	require.NoError(t, err)
	_, err = f.svc.Attendances.Finalize(f.ctx, second.ID, sale("10"))
	require.NoError(t, err)

	open, err := f.svc.Attendances.ListInProgress(f.ctx, f.session.ID)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, first.ID, open[0].ID)
	assert.Equal(t, third.ID, open[1].ID)

	byStaff, err := f.svc.Attendances.List(f.ctx, AttendanceFilter{SessionID: f.session.ID, StaffID: a})
	require.NoError(t, err)
	require.Len(t, byStaff, 1)
	assert.Equal(t, second.ID, byStaff[0].ID)
	require.NotNil(t, byStaff[0].Outcome)

	_, err = f.svc.Attendances.ListInProgress(f.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAttendanceEvents(t *testing.T) {
	f := newFixture(t)
	m := f.enqueue(uuid.New())[0]
	f.events.reset()

	att, err := f.svc.Attendances.Start(f.ctx, m.ID, "")
	require.NoError(t, err)
	_, err = f.svc.Attendances.Finalize(f.ctx, att.ID, sale("10"))
	require.NoError(t, err)
	_, err = f.svc.Attendances.LinkSaleRecord(f.ctx, att.ID, "PDV-1")
	require.NoError(t, err)

	assert.Equal(t, []notify.EventType{
		notify.AttendanceStarted,
		notify.AttendanceFinalized,
		notify.SaleRecordLinked,
	}, f.events.types())

	finalized := f.events.events[1]
	require.NotNil(t, finalized.MemberID)
	assert.Equal(t, m.ID, *finalized.MemberID)
	require.NotNil(t, finalized.AttendanceID)
	assert.Equal(t, att.ID, *finalized.AttendanceID)
}
