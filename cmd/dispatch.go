package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridopt/powersched/app"
	"github.com/gridopt/powersched/config"
)

var dispatchPeriod int

var dispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Economic dispatch of one period by lambda-iteration",
	RunE:  runDispatch,
}

func init() {
	dispatchCmd.Flags().IntVarP(&dispatchPeriod, "period", "t", 0, "period to dispatch")
	rootCmd.AddCommand(dispatchCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	powers, li, err := svc.Dispatch(dispatchPeriod)
	if err != nil {
		return err
	}

	fmt.Printf("lambda: %.4f converged: %v iterations: %d\n", li.Lambda, li.Converged(), len(li.History))
	fmt.Println("unit\tpower")
	for i, u := range svc.System.Units() {
		fmt.Printf("%s\t%.3f\n", u.Name, powers[i])
	}
	return nil
}
