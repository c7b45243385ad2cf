package main

import (
	"github.com/spf13/cobra"

	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	settingsService "github.com/m04kA/salon-booking-service/internal/service/settings"
	"github.com/m04kA/salon-booking-service/internal/service/settings/models"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/txmanager"
)

// provisionCmd создает строку настроек расписания из секции [salon], если ее еще нет
func provisionCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "provision",
		Short: "Create the scheduling config row from [salon] defaults if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			wrappedDB := dbmetrics.Wrap(db, nil)
			svc := settingsService.NewService(
				settingsRepo.NewRepository(wrappedDB),
				txmanager.NewTransactionManager(wrappedDB),
				log,
			)

			result, created, err := svc.Provision(cmd.Context(), &models.ProvisionRequest{
				SalonName:         cfg.Salon.Name,
				SlotMinutes:       cfg.Salon.SlotMinutes,
				BufferMinutes:     cfg.Salon.BufferMinutes,
				MinAdvanceMinutes: cfg.Salon.MinAdvanceMinutes,
				Timezone:          cfg.Salon.Timezone,
			})
			if err != nil {
				log.Error("Provision failed: %v", err)
				return err
			}

			if created {
				log.Info("Scheduling config created: id=%s, tz=%s, slot=%d, buffer=%d",
					result.ID, result.Timezone, result.SlotMinutes, result.BufferMinutes)
			} else {
				log.Info("Scheduling config already exists: id=%s, left unchanged", result.ID)
			}
			return nil
		},
	}
}
