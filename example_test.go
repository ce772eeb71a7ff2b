package plcdiff_test

import (
	"fmt"
	"os"
	"strings"

	plcdiff "github.com/luksan/plc-diff"
)

func ExampleAnalyze() {
	document := `<Project><Name>Proj</Name><Pou><Name>Main</Name>` +
		`<RungEntity><MainComment>pump control</MainComment></RungEntity>` +
		`</Pou></Project>`

	analysis, err := plcdiff.Analyze(strings.NewReader(document))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if err := analysis.Transform(strings.NewReader(document), os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	// Output: <Project><Name>Proj</Name><Pou><Name>Main</Name><RungEntity ctx="Main"><MainComment>pump control</MainComment></RungEntity></Pou></Project>
}
