package task

// Task namespaces, used as the metrics label and in claim routing. Daily
// tasks reset at the day boundary; special (airdrop) tasks complete at most
// once per account.
const (
	NamespaceDaily   = "daily"
	NamespaceSpecial = "special"
)
