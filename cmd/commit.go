package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridopt/powersched/app"
	"github.com/gridopt/powersched/config"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Solve the unit-commitment problem of a study",
	RunE:  runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	sched, err := svc.Schedule(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("status: %s\nobjective: %.3f\n", sched.Status, sched.Objective)
	fmt.Println("time\tunit\tpower")
	for _, r := range sched.Power {
		fmt.Printf("%d\t%s\t%.3f\n", r.Period, r.Unit, r.Power)
	}
	if len(sched.Flows) > 0 {
		fmt.Println("time\tarc\tflow")
		for _, r := range sched.Flows {
			fmt.Printf("%d\t%s\t%.3f\n", r.Period, r.Arc, r.Flow)
		}
	}
	if len(sched.Prices) > 0 {
		fmt.Println("time\tbus\tprice")
		for _, r := range sched.Prices {
			fmt.Printf("%d\t%s\t%.3f\n", r.Period, r.Bus, r.Price)
		}
	}
	return nil
}
