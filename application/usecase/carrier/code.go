package carrier

import "fmt"

// NextCode derives the next carrier code from the highest existing carrier
// id: CAR-001, CAR-002, ... The numeric part keeps growing past 999.
func NextCode(maxID int64) string {
	return fmt.Sprintf("CAR-%03d", maxID+1)
}
