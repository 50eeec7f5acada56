package graph

import "fmt"

// Node id constructors. Ids are stable across identical requests; display
// names are never used to identify or classify nodes.

const (
	rootNodeID             = "total"
	leftoverMinistriesID   = "others:ministries"
	leftoverRecipientsID   = "others:recipients"
	reservedOtherID        = "recipient:other"
	leftoverMinistriesName = "その他の府省庁"
	leftoverRecipientsName = "その他の支出先"
	noDestinationName      = "支出先情報なし"
)

func ministryNodeID(name string) string {
	return "ministry:" + name
}

func projectBudgetID(projectID int) string {
	return fmt.Sprintf("project:%d", projectID)
}

func projectSpendingID(projectID int) string {
	return fmt.Sprintf("project-spending:%d", projectID)
}

func recipientNodeID(spendingID int) string {
	return fmt.Sprintf("recipient:%d", spendingID)
}

func leftoverProjectsBudgetID(ministryName string) string {
	return "others:projects:" + ministryName
}

func leftoverProjectsSpendingID(ministryName string) string {
	return "others-spending:projects:" + ministryName
}

func noDestinationID(projectID int) string {
	return fmt.Sprintf("no-destination:%d", projectID)
}

func leftoverProjectsName(ministryName string) string {
	return fmt.Sprintf("その他の事業(%s)", ministryName)
}
