package classify

import (
	"fmt"

	"github.com/fragmede/fundcli/schema"
)

// PrintClassifyStatus prints classify store status information.
func PrintClassifyStatus(status schema.ClassifyStatus) {
	fmt.Printf("Classify Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Records: %d\n", status.TotalRecords)
	fmt.Printf("Unclassified: %d\n", status.Unclassified)
}
