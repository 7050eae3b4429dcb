package log

// Common field names for structured logging
const (
	FieldComponent      = "component"
	FieldError          = "error"
	FieldErrorKind      = "error_kind"
	FieldOperation      = "operation"
	FieldDuration       = "duration_ms"
	FieldKey            = "key"
	FieldTransactionID  = "transaction_id"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldSubcategory    = "subcategory"
	FieldAmountCents    = "amount_cents"
	FieldFixedExpenseID = "fixed_expense_id"
	FieldPayday         = "payday"
	FieldAdviceStatus   = "advice_status"
	FieldModel          = "model"
	FieldEvent          = "event"
	FieldSheetsRef      = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAdvisor = "advisor"
	ComponentSession = "session"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentCache   = "cache"
	ComponentBackend = "backend"
	ComponentTUI     = "tui"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpReset    = "reset"
	OpPersist  = "persist"
	OpPublish  = "publish"
	OpAdvise   = "advise"
	OpAppend   = "append"
	OpSync     = "sync"
	OpParse    = "parse"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(id, desc string, amountCents int64, category, subcategory string) LogFields {
	f[FieldTransactionID] = id
	f[FieldDescription] = desc
	f[FieldAmountCents] = amountCents
	f[FieldCategory] = category
	f[FieldSubcategory] = subcategory
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
