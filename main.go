// main.go - armcore-demo: thin CLI wiring for the ARM architectural core
//
// Plays the same role as the teacher's original main(): initialize a
// CPU, wire in whatever peripherals exist, and start it running. No
// decoder, MMU, or ELF loader lives here — those are out of scope —
// so this stays a demo harness for the exception-delivery core rather
// than growing into a general-purpose emulator front end.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var (
		cpuType    string
		cycles     int
		scriptPath string
	)

	root := &cobra.Command{
		Use:   "armcore-demo",
		Short: "Run the ARM architectural core for a bounded number of cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cpuType, cycles, scriptPath)
		},
	}

	root.Flags().StringVar(&cpuType, "cpu", "armv4", "CPU type name (see CPUTypes)")
	root.Flags().IntVar(&cycles, "cycles", 1000, "cycle limit; <= 0 runs until stopped")
	root.Flags().StringVar(&scriptPath, "script", "", "path to a Lua device-stimulus script")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cpuType string, cycles int, scriptPath string) error {
	cpu, known := InitializeCPU(cpuType)
	if !known {
		fmt.Fprintf(os.Stderr, "unrecognized cpu type %q, defaulted to %s/%s\n", cpuType, cpu.Type.ISA, cpu.Type.Core)
	}

	cpu.StartCPU(cycles)

	if scriptPath != "" {
		source, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("reading device script: %w", err)
		}
		if err := <-NewDeviceScript(cpu).RunAsync(string(source)); err != nil {
			fmt.Fprintf(os.Stderr, "device script error: %v\n", err)
		}
	}

	<-cpu.QuitRequested()
	if err := cpu.StopCPU(); err != nil {
		return err
	}

	fmt.Println(cpu.DumpCPU())
	return nil
}
