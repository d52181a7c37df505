// Command parkingctl drives the parking API from a terminal: it renders the
// occupancy board of a building and issues assignment and spot writes.
//
// Usage:
//
//	parkingctl [-api URL] <command> [flags]
//
// Commands: board, assign, unassign, delete-vehicle, add-spot, edit-spot,
// delete-spot.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"apartium-backend/apiclient"
	"apartium-backend/parking"
	"apartium-backend/utils"
)

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()
	utils.InitLogger("parkingctl")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, apiclient.LogNotifier{}); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "parkingctl:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, notify apiclient.Notifier) error {
	global := flag.NewFlagSet("parkingctl", flag.ContinueOnError)
	global.SetOutput(out)
	api := global.String("api", utils.EnvOrDefault("PARKING_API_URL", "http://localhost:8080"), "base URL of the parking API")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		fmt.Fprintln(out, "commands: board | assign | unassign | delete-vehicle | add-spot | edit-spot | delete-spot")
		return errUsage
	}

	client := apiclient.New(*api)
	m := apiclient.NewMutator(client, notify)

	cmd, rest := global.Arg(0), global.Args()[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	building := fs.String("building", utils.EnvOrDefault("PARKING_BUILDING_ID", ""), "building id")
	floor := fs.Int("floor", 0, "floor")
	spot := fs.String("spot", "", "parking spot id")

	view := func() parking.ViewState {
		v := parking.Reduce(parking.ViewState{}, parking.SelectBlock{BlockID: *building})
		floorSet := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "floor" {
				floorSet = true
			}
		})
		if floorSet {
			v = parking.Reduce(v, parking.SelectFloor{Floor: floor})
		}
		return v
	}

	switch cmd {
	case "board":
		search := fs.String("search", "", "filter by spot name, plate, occupant or unit")
		status := fs.String("status", "", "occupied | available")
		asJSON := fs.Bool("json", false, "print JSON")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		v := view()
		v = parking.Reduce(v, parking.SetSearch{Query: *search})
		v = parking.Reduce(v, parking.SetStatusFilter{Status: *status})
		board, err := client.Board(ctx, v)
		if err != nil {
			return err
		}
		if *asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(board)
		}
		printBoard(out, board)
		return nil

	case "assign":
		vehicle := fs.String("vehicle", "", "vehicle or guest visit id")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		return m.Assign(ctx, view(), *spot, *vehicle)

	case "unassign":
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		return m.Unassign(ctx, view(), *spot)

	case "delete-vehicle":
		id := fs.String("id", "", "vehicle or guest visit id")
		guest := fs.Bool("guest", false, "id is a guest visit")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		return m.DeleteVehicle(ctx, view(), *id, *guest)

	case "add-spot", "edit-spot":
		name := fs.String("name", "", "spot name")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		v := view()
		in := apiclient.SpotInput{Name: *name, Floor: v.Floor}
		if cmd == "add-spot" {
			return m.AddSpot(ctx, v, in)
		}
		return m.EditSpot(ctx, v, *spot, in)

	case "delete-spot":
		force := fs.Bool("force", false, "release vehicles still holding the spot")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		return m.DeleteSpot(ctx, view(), *spot, *force)
	}

	fmt.Fprintf(out, "unknown command %q\n", cmd)
	return errUsage
}

func printBoard(out io.Writer, board parking.Board) {
	st := board.Stats
	fmt.Fprintf(out, "spots %d  occupied %d  available %d  rate %d%%  guests %d\n\n",
		st.TotalSpots, st.OccupiedSpots, st.AvailableSpots, st.OccupancyRate, st.GuestVehicles)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FLOOR\tSPOT\tPLATE\tOCCUPANT\tUNIT\tTYPE")
	for _, g := range board.Floors {
		for _, sv := range g.Spots {
			if sv.Occupant == nil {
				fmt.Fprintf(tw, "%d\t%s\t-\t-\t-\tfree\n", g.Floor, sv.Name)
				continue
			}
			o := sv.Occupant
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", g.Floor, sv.Name, o.Plate, o.Name, o.UnitNumber, o.Type)
		}
	}
	_ = tw.Flush()
}
