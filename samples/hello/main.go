package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/bfzk/api"
	"github.com/sarchlab/bfzk/config"
	"github.com/tebeka/atexit"
)

//go:embed hello.bf
var helloProgram string

func hello(driver api.Driver) {
	res, err := driver.Interpret(helloProgram, "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	fmt.Print(string(res.Output))
	fmt.Printf("%d steps\n", res.Steps)

	asm, err := driver.Compile(helloProgram)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	fmt.Println(asm)
}

func main() {
	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithConfig(config.Default()).
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Driver")

	hello(driver)

	atexit.Exit(0)
}
