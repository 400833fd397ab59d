package ledgercsv

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Column names of the ledger export, as they appear in the header row.
const (
	ColKind            = "Tipo"
	ColStatus          = "Status"
	ColPlannedDate     = "Data prevista"
	ColActualDate      = "Data efetiva"
	ColInvoiceDueDate  = "Venc. Fatura"
	ColPlannedAmount   = "Valor previsto"
	ColActualAmount    = "Valor efetivo"
	ColDescription     = "Descrição"
	ColCategory        = "Categoria"
	ColSubcategory     = "Subcategoria"
	ColAccount         = "Conta"
	ColTransferAccount = "Conta transferência"
	ColCostCenter      = "Centro"
	ColContact         = "Contato"
	ColPaymentMethod   = "Forma"
	ColProject         = "Projeto"
	ColDocumentNumber  = "N. Documento"
	ColNotes           = "Observações"
	ColAccrualDate     = "Data competência"
	ColUniqueID        = "ID Único"
	ColTags            = "Tags"
	ColCard            = "Cartão"
	ColRecurrence      = "Repetição"
	ColSavingsGoal     = "Meta de Economia"
	ColCreatedOn       = "Data de criação"
)

// Column describes one recognized header column.
type Column struct {
	Name     string
	Required bool
}

// Columns lists every recognized column in export order.
var Columns = []Column{
	{ColKind, true},
	{ColStatus, true},
	{ColPlannedDate, true},
	{ColActualDate, false},
	{ColInvoiceDueDate, false},
	{ColPlannedAmount, true},
	{ColActualAmount, false},
	{ColDescription, false},
	{ColCategory, false},
	{ColSubcategory, false},
	{ColAccount, true},
	{ColTransferAccount, false},
	{ColCostCenter, false},
	{ColContact, true},
	{ColPaymentMethod, true},
	{ColProject, true},
	{ColDocumentNumber, false},
	{ColNotes, false},
	{ColAccrualDate, false},
	{ColUniqueID, true},
	{ColTags, false},
	{ColCard, false},
	{ColRecurrence, true},
	{ColSavingsGoal, false},
	{ColCreatedOn, true},
}

// canonical maps a folded header name to its canonical column name.
var canonical = func() map[string]string {
	m := make(map[string]string, len(Columns))
	for _, c := range Columns {
		m[foldName(c.Name)] = c.Name
	}
	return m
}()

// foldName normalizes a header cell for case-insensitive comparison.
// Decomposed accents are composed to NFC first.
func foldName(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// lookupColumn returns the canonical name for a header cell.
func lookupColumn(s string) (string, bool) {
	name, ok := canonical[foldName(s)]
	return name, ok
}
