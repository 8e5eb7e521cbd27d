package contentguard

import (
	"context"
	"encoding"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/refdata/pkg/logger"
	"github.com/dmitrymomot/refdata/pkg/validator"
)

var (
	timeType          = reflect.TypeFor[time.Time]()
	bigIntType        = reflect.TypeFor[big.Int]()
	bigFloatType      = reflect.TypeFor[big.Float]()
	bigRatType        = reflect.TypeFor[big.Rat]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	stringerType      = reflect.TypeFor[fmt.Stringer]()
)

// Scanner walks arbitrary values and reports string leaves that contain
// forbidden content. It holds no per-scan state and is safe for concurrent use.
type Scanner struct {
	matcher    *Matcher
	exclusions *ExclusionPolicy
	detailed   bool
	maxDepth   int
	logger     *slog.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets the logger used for skipped fields and truncated branches.
func WithLogger(l *slog.Logger) ScannerOption {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMatcher overrides the matcher built from the config pattern.
// Useful to share one compiled matcher between scanners.
func WithMatcher(m *Matcher) ScannerOption {
	return func(s *Scanner) {
		if m != nil {
			s.matcher = m
		}
	}
}

// NewScanner creates a scanner from cfg. The forbidden pattern is compiled
// lazily on the first scan.
func NewScanner(cfg Config, opts ...ScannerOption) *Scanner {
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	s := &Scanner{
		matcher:    NewMatcher(cfg.ForbiddenPattern),
		exclusions: NewExclusionPolicy(cfg.ExcludedPathSubstrings),
		detailed:   cfg.DetailedMessages,
		maxDepth:   maxDepth,
		logger:     logger.Discard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Matcher returns the matcher used for string leaves.
func (s *Scanner) Matcher() *Matcher {
	return s.matcher
}

// Scan returns one failure per string leaf of value that contains forbidden
// content. path is the property path of value itself; pass "" for a root command.
// String map keys are scanned like values and reported under the entry path.
//
// Fields whose name is excluded are skipped together with everything below
// them. Failures follow declaration order of struct fields and index order of
// collections. The returned error is either the context error or ErrScanFailed;
// it never describes the content itself.
func (s *Scanner) Scan(ctx context.Context, value any, path string) (errs validator.ValidationErrors, err error) {
	if cerr := s.matcher.Err(); cerr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, cerr)
	}
	if value == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			errs = nil
			err = fmt.Errorf("%w: %v", ErrScanFailed, r)
		}
	}()

	w := &walker{
		scanner:  s,
		ctx:      ctx,
		visiting: make(map[visitKey]struct{}),
	}
	if err := w.visit(reflect.ValueOf(value), path, 0); err != nil {
		return nil, err
	}
	return w.errs, nil
}

// visitKey identifies a reference value on the current recursion stack.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type walker struct {
	scanner  *Scanner
	ctx      context.Context
	errs     validator.ValidationErrors
	visiting map[visitKey]struct{}
}

func (w *walker) visit(v reflect.Value, path string, depth int) error {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return w.visit(v.Elem(), path, depth)

	case reflect.Pointer:
		if v.IsNil() || isScalar(v.Type().Elem()) {
			return nil
		}
		leave, seen := w.enter(v)
		if seen {
			return nil
		}
		defer leave()
		return w.visit(v.Elem(), path, depth)

	case reflect.String:
		w.scanString(v.String(), path)
		return nil
	}

	if isScalar(v.Type()) {
		return nil
	}
	if depth > w.scanner.maxDepth {
		w.truncate(v, path)
		return nil
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		leave, seen := w.enter(v)
		if seen {
			return nil
		}
		defer leave()
		return w.visitSequence(v, path, depth)

	case reflect.Array:
		return w.visitSequence(v, path, depth)

	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		leave, seen := w.enter(v)
		if seen {
			return nil
		}
		defer leave()
		return w.visitMap(v, path, depth)

	case reflect.Struct:
		return w.visitStruct(v, path, depth)
	}

	return nil
}

func (w *walker) visitSequence(v reflect.Value, path string, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	for i := range v.Len() {
		if err := w.visit(v.Index(i), indexPath(path, strconv.Itoa(i)), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visitMap(v reflect.Value, path string, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	type entry struct {
		key   string
		keyed bool
		value reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key()
		entries = append(entries, entry{
			key:   formatKey(k),
			keyed: k.Kind() == reflect.String,
			value: iter.Value(),
		})
	}
	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })

	for _, e := range entries {
		entryPath := indexPath(path, e.key)
		if e.keyed {
			if w.scanner.exclusions.IsExcluded(e.key) {
				continue
			}
			w.scanString(e.key, entryPath)
		}
		if err := w.visit(e.value, entryPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visitStruct(v reflect.Value, path string, depth int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() && !sf.Anonymous {
			continue
		}

		name := fieldName(sf)
		if w.scanner.exclusions.IsExcluded(sf.Name) || w.scanner.exclusions.IsExcluded(name) {
			continue
		}

		if err := w.visitField(v, i, sf, path, name, depth); err != nil {
			return err
		}
	}
	return nil
}

// visitField isolates introspection panics to the single field being read.
func (w *walker) visitField(v reflect.Value, i int, sf reflect.StructField, path, name string, depth int) (err error) {
	fieldPath := joinPath(path, name)
	defer func() {
		if r := recover(); r != nil {
			w.scanner.logger.WarnContext(w.ctx, "content scan skipped field",
				logger.Path(fieldPath),
				logger.Panic(r))
			err = nil
		}
	}()

	fv := v.Field(i)
	if sf.Anonymous && sf.Tag.Get("json") == "" {
		return w.visitEmbedded(fv, sf.IsExported(), path, fieldPath, depth)
	}
	return w.visit(fv, fieldPath, depth+1)
}

// visitEmbedded flattens embedded structs into the parent path, the way
// encoding/json promotes their fields.
func (w *walker) visitEmbedded(fv reflect.Value, exported bool, parentPath, fieldPath string, depth int) error {
	ev := fv
	if ev.Kind() == reflect.Pointer {
		if ev.IsNil() {
			return nil
		}
		leave, seen := w.enter(ev)
		if seen {
			return nil
		}
		defer leave()
		ev = ev.Elem()
	}

	if ev.Kind() == reflect.Struct && !isScalar(ev.Type()) {
		return w.visitStruct(ev, parentPath, depth+1)
	}
	if !exported {
		return nil
	}
	return w.visit(ev, fieldPath, depth+1)
}

func (w *walker) scanString(text, path string) {
	matches := w.scanner.matcher.Matches(text)
	if len(matches) == 0 {
		return
	}
	w.errs = append(w.errs, newFailure(path, matches, w.scanner.detailed))
}

// truncate reports a composite value below the depth limit. Its content
// cannot be verified, so it is rejected unless it is empty.
func (w *walker) truncate(v reflect.Value, path string) {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		if v.IsNil() || v.Len() == 0 {
			return
		}
	case reflect.Array:
		if v.Len() == 0 {
			return
		}
	case reflect.Struct:
		if !hasExportedFields(v.Type()) {
			return
		}
	default:
		return
	}

	w.scanner.logger.DebugContext(w.ctx, "content scan depth limit reached",
		logger.Path(path),
		slog.Int("max_depth", w.scanner.maxDepth))
	w.errs = append(w.errs, newDepthFailure(path, w.scanner.maxDepth))
}

// enter marks a reference value as being on the recursion stack.
// seen is true when the value is already being visited, i.e. a cycle.
func (w *walker) enter(v reflect.Value) (leave func(), seen bool) {
	key := visitKey{typ: v.Type(), ptr: v.Pointer()}
	if v.Kind() == reflect.Slice {
		key.len = v.Len()
	}
	if key.ptr == 0 {
		return func() {}, false
	}
	if _, ok := w.visiting[key]; ok {
		return nil, true
	}
	w.visiting[key] = struct{}{}
	return func() { delete(w.visiting, key) }, false
}

// isScalar reports whether values of t are opaque for content scanning.
func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	case reflect.Array, reflect.Slice:
		// []byte, [16]byte (uuid.UUID) and similar raw byte containers
		return t.Elem().Kind() == reflect.Uint8
	case reflect.Struct:
		switch t {
		case timeType, bigIntType, bigFloatType, bigRatType:
			return true
		}
		if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType) {
			return true
		}
		return implementsStringer(t) && !hasExportedFields(t)
	}
	return false
}

func implementsStringer(t reflect.Type) bool {
	return t.Implements(stringerType) || reflect.PointerTo(t).Implements(stringerType)
}

func hasExportedFields(t reflect.Type) bool {
	for i := range t.NumField() {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}

func fieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" || tag == "-" {
		return sf.Name
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return sf.Name
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path, index string) string {
	return path + "[" + index + "]"
}

func formatKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k)
}
