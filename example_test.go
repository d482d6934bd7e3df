package smartsheet_test

import (
	"fmt"

	"github.com/javajack/smartsheet"
)

func ExampleParseFormat() {
	f := smartsheet.ParseFormat(",,1,,,,,,27,,,,,,,,")
	fmt.Println(f.Bold, f.TextColor, f.FontSize.Points())
	// Output: true RED_DARK 10
}

func ExampleFormat_String() {
	f := smartsheet.Format{Bold: true, Currency: smartsheet.CurrencyUSD, DecimalCount: 2}
	fmt.Println(f.String())
	fmt.Printf("%q\n", smartsheet.DefaultFormat().String())
	// Output:
	// ,,1,,,,,,,,,13,2,,,,
	// ",,,,,,,,,,,,,,,,"
}

func ExampleParseSchema() {
	schema, err := smartsheet.ParseSchema([]byte(`
columns:
  - {key: id, title: "Project ID #", type: TEXT_NUMBER, primary: true}
  - {key: status, title: Status, type: PICKLIST, options: [Active, Inactive]}
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(schema.Keys())
	// Output: [id status]
}
