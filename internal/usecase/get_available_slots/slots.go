package get_available_slots

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// slotParams входные данные генератора слотов, все моменты в абсолютном времени
type slotParams struct {
	dayStart        time.Time // начало рабочего окна
	dayEnd          time.Time // конец рабочего окна
	durationMinutes int
	bufferMinutes   int
	slotMinutes     int
	minStart        time.Time // now + minAdvanceMinutes
	blocks          []domain.Interval
	appointments    []domain.Interval
	location        *time.Location
}

// generateSlots обходит рабочее окно с шагом slotMinutes и возвращает свободные начала "HH:mm"
//
// Кандидат [current, current+duration+buffer):
// - если его конец выходит за dayEnd, обход прекращается (дальше будет только хуже)
// - если начало раньше minStart, кандидат пропускается
// - если он конфликтует с блокировкой или записью, кандидат пропускается
func generateSlots(p slotParams) []string {
	slots := make([]string, 0)
	if p.slotMinutes <= 0 {
		return slots
	}

	for current := p.dayStart; current.Before(p.dayEnd); current = types.AddMinutes(current, p.slotMinutes) {
		slotEnd := types.AddMinutes(current, p.durationMinutes+p.bufferMinutes)
		if slotEnd.After(p.dayEnd) {
			break
		}

		if current.Before(p.minStart) {
			continue
		}

		candidate := domain.Interval{Start: current, End: slotEnd}
		if domain.HasConflict(candidate, p.blocks) || domain.HasConflict(candidate, p.appointments) {
			continue
		}

		slots = append(slots, types.NewTimeString(current.In(p.location)).String())
	}

	return slots
}
