package view

// Form binds one record to the modal create/update form.
type Form[T any] struct {
	record  T
	open    bool
	editing bool
}

func (f *Form[T]) OpenNew() {
	var zero T
	f.record = zero
	f.open = true
	f.editing = false
}

func (f *Form[T]) OpenEdit(record T) {
	f.record = record
	f.open = true
	f.editing = true
}

func (f *Form[T]) Close() {
	var zero T
	f.record = zero
	f.open = false
	f.editing = false
}

// Set applies one input change to the bound record.
func (f *Form[T]) Set(change func(*T)) {
	change(&f.record)
}

func (f *Form[T]) Record() T {
	return f.record
}

func (f *Form[T]) Open() bool {
	return f.open
}

// Editing reports whether the form was opened on an existing record; false
// means submit should create.
func (f *Form[T]) Editing() bool {
	return f.editing
}
