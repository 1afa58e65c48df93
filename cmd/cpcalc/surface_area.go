package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"CPCalc/internal/calc/surfacearea"

	"github.com/ansel1/merry"
	"github.com/spf13/cobra"
)

type surfaceAreaOptions struct {
	structure    string
	diameter     string
	diameterUnit string
	length       string
	lengthUnit   string
	height       string
	heightUnit   string
	preset       bool
	asJSON       bool
}

var errPresetWithDimensions = merry.New("--preset cannot be combined with --diameter, --length or --height")

func newSurfaceAreaCmd() *cobra.Command {
	var o surfaceAreaOptions
	cmd := &cobra.Command{
		Use:   "surface-area",
		Short: "Surface area of a pipeline or tank",
		Long: `Calculate the surface area to be protected.

Structures:
  pipeline               A = π × D × L
  tank-internal          Ashell = π × D × h, Abottom = π × r², Atotal = Ashell + Abottom
  tank-external-bottom   A = π × r²

Examples:
  cpcalc surface-area --diameter 12 --diameter-unit in --length 1000
  cpcalc surface-area -s tank-internal -d 10 --height 8
  cpcalc surface-area -s tank-external-bottom --preset --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSurfaceArea(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.structure, "structure", "s", string(surfacearea.Pipeline), "Structure type: pipeline, tank-internal, tank-external-bottom")
	f.StringVarP(&o.diameter, "diameter", "d", "", "Diameter")
	f.StringVar(&o.diameterUnit, "diameter-unit", "m", "Diameter unit (m, cm, mm, in, ft)")
	f.StringVarP(&o.length, "length", "l", "", "Pipeline length")
	f.StringVar(&o.lengthUnit, "length-unit", "m", "Length unit (m, cm, mm, in, ft)")
	f.StringVar(&o.height, "height", "", "Tank wetted height")
	f.StringVar(&o.heightUnit, "height-unit", "m", "Height unit (m, cm, mm, in, ft)")
	f.BoolVar(&o.preset, "preset", false, "Use the example dimensions for the structure (conflicts with dimension flags)")
	f.BoolVar(&o.asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func init() {
	rootCmd.AddCommand(newSurfaceAreaCmd())
}

func runSurfaceArea(out io.Writer, o surfaceAreaOptions) error {
	in, err := surfacearea.Input{
		Structure:    surfacearea.Structure(o.structure),
		Diameter:     o.diameter,
		DiameterUnit: surfacearea.Unit(o.diameterUnit),
		Length:       o.length,
		LengthUnit:   surfacearea.Unit(o.lengthUnit),
		Height:       o.height,
		HeightUnit:   surfacearea.Unit(o.heightUnit),
	}.Normalize()
	if err != nil {
		return err
	}
	if o.preset && (o.diameter != "" || o.length != "" || o.height != "") {
		return errPresetWithDimensions
	}

	c := surfacearea.NewCalculator()
	if o.preset {
		c.ApplyPreset(in.Structure)
	} else {
		c.Load(in)
	}
	if err := c.Submit(); err != nil {
		return err
	}
	v := surfacearea.NewView(c)

	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	printSurfaceArea(out, c, v)
	return nil
}

func printSurfaceArea(out io.Writer, c *surfacearea.Calculator, v surfacearea.View) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     SURFACE AREA - %s\n", v.Label)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "INPUTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range surfacearea.Fields {
		if !v.Fields[f].Required {
			continue
		}
		st := c.Field(f)
		fmt.Fprintf(w, "  %s:\t%s %s\t= %.4f m\n", f, st.Value, st.Unit, surfacearea.ToMeters(st.Value, st.Unit))
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "CALCULATIONS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	for _, s := range v.Steps {
		fmt.Fprintf(out, "  %s\n", s)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "RESULTS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	r := v.Result
	if r.Tank != nil {
		fmt.Fprintf(w, "  Ashell:\t%.4f m²\t%.4f ft²\n", r.Tank.ShellM2, r.ShellFt2)
		fmt.Fprintf(w, "  Abottom:\t%.4f m²\t%.4f ft²\n", r.Tank.BottomM2, r.BottomFt2)
		fmt.Fprintf(w, "  Atotal:\t%.4f m²\t%.4f ft²\n", r.Tank.TotalM2, r.TotalFt2)
	} else {
		fmt.Fprintf(w, "  Area:\t%.4f m²\t%.4f ft²\n", r.AreaM2, r.AreaFt2)
	}
	w.Flush()
	fmt.Fprintln(out)
}
