package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/repositories"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
)

// pharmacy pricing:reconcile — one-shot sweep that repairs order line
// prices and stale totals. Safe to re-run; a second pass repairs nothing.
var reconcileCmd = &cobra.Command{
	Use:   "pricing:reconcile",
	Short: "Recompute order totals and backfill missing line prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		svc := services.NewPricingService(
			repositories.NewOrderRepository(),
			repositories.NewMedicineRepository(),
		)

		repaired, err := svc.RecalculateAllTotals(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Reconciliation complete: %d order(s) repaired\n", repaired)
		return nil
	},
}
