package importer

// Result summarizes a completed import.
type Result struct {
	NewPeopleCount     int
	ImportedEntryCount int
	OrphanedEntryCount int
}

// Preview is what an import would do, computed without writing anything.
type Preview struct {
	EntryCount     int
	ContactCount   int
	NewPeopleCount int
}
