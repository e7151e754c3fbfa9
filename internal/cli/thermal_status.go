package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"toolbelt/internal/thermal"
)

func init() {
	thermalCmd.AddCommand(thermalStatusCmd)
	thermalCmd.AddCommand(thermalListCmd)
	thermalCmd.AddCommand(thermalZonesCmd)
}

var thermalStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the thermal control surface",
	Long:  "Reads the INT3400 device, its zone and the current policy without\nchanging anything.",
	RunE:  runThermalStatus,
}

var thermalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List policies the platform supports",
	RunE:  runThermalList,
}

var thermalZonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List thermal zones within the scan range",
	RunE:  runThermalZones,
}

func runThermalStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := newSelector(cfg).Snapshot()

	if !st.DevicePresent {
		fmt.Println("device:    absent")
		return nil
	}
	fmt.Printf("device:    %s\n", cfg.Paths().Device)

	if st.Zone != nil {
		fmt.Printf("zone:      %s (type %q, mode %s)\n", st.Zone.Dir, st.Zone.Type, st.Zone.Mode)
	} else {
		fmt.Println("zone:      none matching")
	}

	fmt.Printf("current:   %s\n", annotate(st.Current))
	fmt.Printf("available: %d policies\n", len(st.Available))
	return nil
}

func runThermalList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sel := newSelector(cfg)
	available, err := sel.Available()
	if err != nil {
		return err
	}

	current := sel.Snapshot().Current
	for _, id := range available {
		marker := " "
		if id == current {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, annotate(id))
	}
	return nil
}

func runThermalZones(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	zones := newSelector(cfg).Zones()
	if len(zones) == 0 {
		fmt.Println("No thermal zones found.")
		return nil
	}
	for _, z := range zones {
		mode := z.Mode
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("%2d  %-30s %s\n", z.Index, z.Type, mode)
	}
	return nil
}

// annotate appends the human policy name to a UUID when one is known.
func annotate(id string) string {
	if id == "" {
		return "(unset)"
	}
	if name := thermal.PolicyName(id); name != "" {
		return fmt.Sprintf("%s (%s)", id, name)
	}
	return id
}
