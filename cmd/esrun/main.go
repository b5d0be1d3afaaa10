package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/amir-mohammad-maghrooni/DiseaseSim/epidemicsim"
)

// Headless scenario runner: the default world with a mask mandate on the
// metro, social distancing in the suburbs, and hysteresis lockdown rules on
// every region.
func main() {
	days := flag.Int("days", 100, "number of days to simulate")
	flag.Parse()

	config, err := epidemicsim.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	world := epidemicsim.SetupWorld(config.Seed)
	world.InitializeWorld()

	fmt.Println("=== Disease Simulation ===")
	fmt.Println("Day 0: Initial State")
	printStatistics(world)

	world.RegionByName("Metro City").AddPolicy(epidemicsim.MaskPolicy())
	fmt.Println("Applying Mask Mandate to Metro City")
	world.RegionByName("Suburbs").AddPolicy(epidemicsim.SocialDistancingPolicy())
	fmt.Println("Applying Social Distancing to Suburbs")

	controller := epidemicsim.SetupAutoPolicyController()
	controller.AddRule(epidemicsim.AutoPolicyRule{RegionName: "Metro City", PolicyName: "Lockdown", AddThreshold: 3000, RemoveThreshold: 500})
	controller.AddRule(epidemicsim.AutoPolicyRule{RegionName: "Suburbs", PolicyName: "Lockdown", AddThreshold: 2000, RemoveThreshold: 300})
	controller.AddRule(epidemicsim.AutoPolicyRule{RegionName: "Rural Town", PolicyName: "Lockdown", AddThreshold: 1000, RemoveThreshold: 50})

	world.Start()
	for day := 1; day <= *days; day++ {
		world.SimulateDays(1, controller)
		if day%10 == 0 {
			fmt.Printf("\nDay %d:\n", world.CurrentDay())
			printStatistics(world)
		}
	}

	fmt.Printf("\nFinal state after %d days:\n", world.CurrentDay())
	printStatistics(world)

	summary := world.History.Summary()
	fmt.Printf("\nPeak infected: %d on day %d, mean %.1f, attack rate %.1f%%\n",
		summary.PeakInfected, summary.PeakDay, summary.MeanInfected, summary.AttackRate*100)

	csvPath := filepath.Join(config.StatsDir, "simulation_stats.csv")
	if err := world.History.WriteCSV(csvPath); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Stats written to " + csvPath)
}

func printStatistics(world *epidemicsim.World) {
	global := world.GlobalStatistics()
	fmt.Printf("  Global: Healthy: %d, Infected: %d, Recovered: %d, Deceased: %d\n",
		global["Healthy"], global["Infected"], global["Recovered"], global["Deceased"])

	for _, region := range world.Regions {
		stats := region.Statistics()
		fmt.Printf("  %v: Healthy: %d, Infected: %d, Recovered: %d, Deceased: %d\n",
			region.Name, stats["Healthy"], stats["Infected"], stats["Recovered"], stats["Deceased"])
		if policies := region.ActivePolicies(); len(policies) > 0 {
			fmt.Printf("    Active Policies:")
			for _, p := range policies {
				fmt.Printf(" %v", p.Name)
			}
			fmt.Println()
		}
	}
}
