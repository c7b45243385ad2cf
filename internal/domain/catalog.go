package domain

import "time"

// OptionType вариант услуги
type OptionType string

const (
	OptionApplication OptionType = "APPLICATION"
	OptionMaintenance OptionType = "MAINTENANCE"
)

// Service услуга каталога
type Service struct {
	ID          string
	Name        string
	Description *string
	Active      bool
	Options     []ServiceOption
	CreatedAt   time.Time
}

// ServiceOption бронируемый вариант услуги со своей длительностью и ценой
type ServiceOption struct {
	ID              string
	ServiceID       string
	Type            OptionType
	DurationMinutes int
	PriceCents      int
	DepositCents    int
	Active          bool
}

// RequiresDeposit true, если для записи нужен депозит
func (o *ServiceOption) RequiresDeposit() bool {
	return o.DepositCents > 0
}

// BookableOption опция вместе с родительской услугой
type BookableOption struct {
	Option  ServiceOption
	Service Service
}

// IsBookable опция и услуга активны, длительность положительная
func (b *BookableOption) IsBookable() bool {
	return b.Option.Active && b.Service.Active && b.Option.DurationMinutes > 0
}

// OptionTypeOrder порядок вывода опций: сначала нанесение, потом коррекция
func OptionTypeOrder(t OptionType) int {
	switch t {
	case OptionApplication:
		return 0
	case OptionMaintenance:
		return 1
	}
	return 2
}
