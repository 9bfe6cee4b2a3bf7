package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path"
	"runtime/pprof"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/curvature/deform"
	"github.com/phil-mansfield/curvature/io"
	"github.com/phil-mansfield/curvature/scene"
	"github.com/phil-mansfield/curvature/stream"
)

const (
	// Number of samples used for schedule plots.
	plotSamples = 200
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		renderStr, plotStr, serveStr string
		exampleConfig                string
	)
	vars := map[string]*string{
		"Render":        &renderStr,
		"Plot":          &plotStr,
		"Serve":         &serveStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&renderStr, "Render", "",
		"Configuration file for [Render] mode. Writes one buffer file per "+
			"visual per frame to the Output directory.",
	)
	flag.StringVar(
		&plotStr, "Plot", "",
		"Configuration file for [Plot] mode. Writes diagnostic plots of the "+
			"animation schedules and geodesics to the Output directory.",
	)
	flag.StringVar(
		&serveStr, "Serve", "",
		"Configuration file for [Serve] mode. Serves buffers over a "+
			"websocket at /ws.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Scene'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Render":
		wrap := readConfig(renderStr)
		requireOutput(&wrap.Scene)
		if !wrap.Scene.ValidFrames() {
			log.Fatal("Invalid/non-existent 'Frames' value.")
		}
		fg := setupIO(&wrap.Scene)
		defer fg.Close()
		renderMain(wrap)

	case "Plot":
		wrap := readConfig(plotStr)
		requireOutput(&wrap.Scene)
		fg := setupIO(&wrap.Scene)
		defer fg.Close()
		plotMain(wrap)

	case "Serve":
		wrap := readConfig(serveStr)
		if !wrap.Scene.ValidAddr() {
			log.Fatal("Invalid/non-existent 'Addr' value.")
		}
		fg := setupIO(&wrap.Scene)
		defer fg.Close()
		serveMain(wrap)

	case "ExampleConfig":
		switch exampleConfig {
		case "Scene":
			fmt.Println(io.ExampleSceneFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Scene'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but curvature "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func readConfig(fname string) *io.SceneWrapper {
	wrap, err := io.ReadSceneConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	return wrap
}

func requireOutput(con *io.SceneConfig) {
	if !con.ValidOutput() {
		log.Fatal("Invalid/non-existent 'Output' value.")
	}
	if err := os.MkdirAll(con.Output, 0777); err != nil {
		log.Fatal(err.Error())
	}
}

// setupIO redirects logging and starts profiling if the config asks for it.
func setupIO(con *io.SceneConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// frameTimes returns the animation parameters rendered by Render mode.
func frameTimes(con *io.SceneConfig) []float64 {
	ts := make([]float64, con.Frames)
	if con.Frames == 1 {
		ts[0] = con.TStart
		return ts
	}
	dt := (con.TEnd - con.TStart) / float64(con.Frames-1)
	for i := range ts {
		ts[i] = con.TStart + dt*float64(i)
	}
	ts[len(ts)-1] = con.TEnd
	return ts
}

// renderMain writes every frame of every visual to disk.
func renderMain(wrap *io.SceneWrapper) {
	sc, err := scene.New(wrap)
	if err != nil {
		log.Fatal(err.Error())
	}

	ts := frameTimes(&wrap.Scene)
	for _, name := range sc.Names() {
		log.Printf("Rendering %d frames of '%s'.", len(ts), name)
		for i, t := range ts {
			pc, err := sc.Frame(name, t, true)
			if err != nil {
				log.Fatal(err.Error())
			}

			out := path.Join(
				wrap.Scene.Output,
				fmt.Sprintf("%s_%04d%s", name, i, io.BufferExt),
			)
			if err = io.WriteBufferFile(out, pc, t); err != nil {
				log.Fatalf("Could not write %s: %s", out, err.Error())
			}
			if (i+1)%25 == 0 {
				log.Printf("Wrote %d/%d frames of '%s'.", i+1, len(ts), name)
			}
		}
	}
}

// plotMain plots the animation schedules and the geodesics at the start
// and end of the animation.
func plotMain(wrap *io.SceneWrapper) {
	con := &wrap.Scene
	ts := make([]float64, plotSamples)
	for i := range ts {
		ts[i] = con.TStart + (con.TEnd-con.TStart)*float64(i)/(plotSamples-1)
	}

	sched, err := wrap.Morph.Schedule()
	if err != nil {
		log.Fatal(err.Error())
	}
	ws := make([]float64, len(ts))
	for i, t := range ts {
		if ws[i], err = sched.Weight(t); err != nil {
			log.Fatal(err.Error())
		}
	}

	plt.Figure()
	plt.Plot(ts, ws, "k", plt.LW(2))
	plt.Title("Sphere/plane morph schedule")
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`weight`, plt.FontSize(16))
	plt.YLim(-0.05, 1.05)
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(path.Join(con.Output, "morph_schedule.png"))

	level, err := deform.ParseLevel(wrap.Grid.Level)
	if err != nil {
		log.Fatal(err.Error())
	}
	norms := make([]float64, len(ts))
	for i, t := range ts {
		g := deform.At(t, level)
		sum := 0.0
		for _, x := range g {
			for _, y := range x {
				for _, z := range y {
					sum += z * z
				}
			}
		}
		norms[i] = math.Sqrt(sum)
	}

	plt.Figure()
	plt.Plot(ts, norms, "k", plt.LW(2))
	plt.Title(fmt.Sprintf("%s grid deformation", level))
	plt.XLabel(`$t$`, plt.FontSize(16))
	plt.YLabel(`$|\Gamma|$`, plt.FontSize(16))
	plt.SaveFig(path.Join(con.Output, "grid_schedule.png"))

	gs, err := scene.NewGeodesics(&wrap.Geodesic)
	if err != nil {
		log.Fatal(err.Error())
	}
	for _, p := range []float64{con.TStart, con.TEnd} {
		plt.Figure()
		for i, tr := range gs.Integrate(gs.Field, p) {
			n := tr.Visible()
			xs, ys := make([]float64, n), make([]float64, n)
			for j := 0; j < n; j++ {
				xs[j], ys[j] = tr[j].X[1], tr[j].X[0]
			}
			c := gs.Colors[i]
			hex := colorful.Color{R: c[0], G: c[1], B: c[2]}.Hex()
			plt.Plot(xs, ys, plt.LW(2), plt.C(hex))
		}
		plt.Title(fmt.Sprintf("%s geodesics, $t$ = %g", wrap.Geodesic.Metric, p))
		plt.XLabel(`$x^1$`, plt.FontSize(16))
		plt.YLabel(`$x^0$`, plt.FontSize(16))
		plt.SaveFig(path.Join(
			con.Output, fmt.Sprintf("geodesics_%g.png", p),
		))
	}

	log.Printf("Wrote plots to %s", con.Output)
	plt.Execute()
}

// serveMain serves buffers until the process is killed.
func serveMain(wrap *io.SceneWrapper) {
	s := stream.NewServer(wrap)
	log.Printf("Serving [%s] on ws://%s/ws", wrap.Scene.Visuals, wrap.Scene.Addr)
	log.Fatal(http.ListenAndServe(wrap.Scene.Addr, stream.NewMux(s)))
}
