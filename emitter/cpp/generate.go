package cpp

import (
	"strconv"

	"github.com/rtweeks/fair-cg/analyzer"
	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter"
	"github.com/rtweeks/fair-cg/util"
)

// logger returns cfg.Logger, falling back to a no-op logger for a
// zero-value EmitConfig that never went through config.Default().
func logger(cfg config.EmitConfig) util.Logger {
	if cfg.Logger == nil {
		return util.DontLog{}
	}
	return cfg.Logger
}

// Generate writes both the header and implementation sections for
// className into w, header first. Use GenerateHeader/GenerateImpl
// directly when config.EmitConfig calls for a split header/impl sink
// pair or a FileBase-derived pair of files.
func Generate(an *analyzer.Analyzer, className string, cfg config.EmitConfig, w *emitter.CodeWriter) error {
	if err := GenerateHeader(an, className, cfg, w); err != nil {
		return err
	}
	return GenerateImpl(an, className, cfg, "", w)
}

func charType(cfg config.EmitConfig) string {
	if cfg.CharType == "" {
		return "wchar_t"
	}
	return cfg.CharType
}

// names resolves every declared state and action name to its sanitized
// C++ identifier, failing ErrNameCollision on the first clash.
type names struct {
	state  map[string]string
	action map[string]string
}

func resolveNames(an *analyzer.Analyzer) (names, error) {
	stateList := an.States()
	stateNames, err := sanitizeAll(stateList)
	if err != nil {
		return names{}, err
	}

	actionList := an.Actions()
	actionNameList := make([]string, len(actionList))
	for i, act := range actionList {
		actionNameList[i] = act.Name
	}
	actionNames, err := sanitizeAll(actionNameList)
	if err != nil {
		return names{}, err
	}

	return names{state: stateNames, action: actionNames}, nil
}

func stateEnumID(n names, state string) string  { return "s_" + n.state[state] }
func actionEnumID(n names, action string) string { return "a_" + n.action[action] }

// GenerateHeader writes className's class declaration: public
// construction/processChar/final surface plus the Fields/Actions nested
// structs, per spec.md §6's C++ output surface. Enums, tables, and free
// functions live in the implementation's anonymous namespace instead, so
// the header never needs them.
func GenerateHeader(an *analyzer.Analyzer, className string, cfg config.EmitConfig, w *emitter.CodeWriter) error {
	n, err := resolveNames(an)
	if err != nil {
		return err
	}
	ch := charType(cfg)

	if cfg.Message != "" {
		w.Writef("// %s", cfg.Message).Newline()
	}
	w.Write("#pragma once").Newline().Newline()

	if cfg.Namespace != "" {
		w.Writef("namespace %s {", cfg.Namespace).Newline().Newline()
	}

	w.Writef("class %s {", className).Newline()
	w.Write("public:").Newline()
	w.Indent()
	w.Writef("%s();", className).Newline()
	w.Writef("bool processChar(%s ch);", ch).Newline()
	w.Write("bool final() const;").Newline().Newline()
	w.Write("struct Fields {").Newline()
	w.Write("};").Newline()
	w.Write("const Fields& fields() const { return actions_; }").Newline()
	w.Unindent()
	w.Newline()
	w.Write("private:").Newline()
	w.Indent()
	w.Write("struct Actions : Fields {").Newline()
	w.Indent()
	for _, act := range an.Actions() {
		sig := actionSignature(n, act, ch)
		w.Writef("void %s;", sig).Newline()
	}
	w.Write("void reset_fields();").Newline()
	w.Unindent()
	w.Write("};").Newline().Newline()
	w.Write("int state_;").Newline()
	w.Write("Actions actions_;").Newline()
	w.Unindent()
	w.Write("};").Newline()

	if cfg.Namespace != "" {
		w.Newline().Writef("} // namespace %s", cfg.Namespace).Newline()
	}
	return nil
}

func actionSignature(n names, act *automaton.Action, ch string) string {
	if act.Options.CharVar != "" {
		return "do_" + n.action[act.Name] + "(" + ch + " " + act.Options.CharVar + ")"
	}
	return "do_" + n.action[act.Name] + "()"
}

// GenerateImpl writes className's implementation: the anonymous-
// namespace enums and tables, the classification/isFinal helpers, and
// the member function bodies. headerInclude, if non-empty, is emitted as
// a leading #include; pass "" when the header was already written into
// the same sink by Generate.
func GenerateImpl(an *analyzer.Analyzer, className string, cfg config.EmitConfig, headerInclude string, w *emitter.CodeWriter) error {
	n, err := resolveNames(an)
	if err != nil {
		return err
	}
	ch := charType(cfg)

	if headerInclude != "" {
		w.Writef("#include %q", headerInclude).Newline().Newline()
	}
	if cfg.Namespace != "" {
		w.Writef("namespace %s {", cfg.Namespace).Newline().Newline()
	}

	logger(cfg).Debugf("cpp: generating %s over %d states, %d classes", className, len(an.States()), an.Classes().Len())

	w.Write("namespace {").Newline().Newline()
	writeEnums(w, an, n)
	writeTables(w, an, n, cfg)
	writeClassify(w, an, n, ch)
	writeIsFinal(w, an, n)
	w.Write("} // namespace").Newline().Newline()

	writeMemberFunctions(w, an, n, className, ch)

	if cfg.Namespace != "" {
		w.Newline().Writef("} // namespace %s", cfg.Namespace).Newline()
	}
	return nil
}

func writeEnums(w *emitter.CodeWriter, an *analyzer.Analyzer, n names) {
	states := an.States()
	w.Write("enum StateType {").Newline()
	w.Indent()
	for _, s := range states {
		w.Writef("%s,", stateEnumID(n, s)).Newline()
	}
	w.Unindent()
	w.Write("};").Newline().Newline()

	nClasses := an.Classes().Len()
	w.Write("enum CharacterClass {").Newline()
	w.Indent()
	for i := 0; i < nClasses; i++ {
		w.Writef("cc_%d,", i).Newline()
	}
	w.Write("cc_other,").Newline()
	w.Unindent()
	w.Write("};").Newline().Newline()

	w.Write("enum ActionType {").Newline()
	w.Indent()
	for _, act := range an.Actions() {
		w.Writef("%s = 1 << %d,", actionEnumID(n, act.Name), act.OrderKey).Newline()
	}
	w.Unindent()
	w.Write("};").Newline().Newline()
}

func writeTables(w *emitter.CodeWriter, an *analyzer.Analyzer, n names, cfg config.EmitConfig) {
	states := an.States()
	nClasses := an.Classes().Len()
	nCols := nClasses + 1
	log := logger(cfg)

	w.Writef("const int parserTransitions[%d][%d] = {", len(states), nCols).Newline()
	w.Indent()
	for _, s := range states {
		log.Debugf("cpp: resolving transition row for state %q (%d classes + other)", s, nClasses)
		w.Writef("/* %s */ {", stateEnumID(n, s)).Newline()
		w.Indent()
		for c := 0; c < nClasses; c++ {
			end, _, err := an.TransitionOf(s, c)
			w.Err(err)
			w.Writef("%s,", stateEnumID(n, end)).Newline()
		}
		end, _, err := an.TransitionOf(s, -1)
		w.Err(err)
		w.Writef("%s,", stateEnumID(n, end)).Newline()
		w.Unindent()
		w.Write("},").Newline()
	}
	w.Unindent()
	w.Write("};").Newline().Newline()

	w.Writef("const unsigned parserActions[%d][%d] = {", len(states), nCols).Newline()
	w.Indent()
	for _, s := range states {
		log.Debugf("cpp: resolving action mask row for state %q", s)
		w.Writef("/* %s */ {", stateEnumID(n, s)).Newline()
		w.Indent()
		for c := 0; c < nClasses; c++ {
			_, mask, err := an.TransitionOf(s, c)
			w.Err(err)
			w.Writef("%s,", maskLiteral(an, n, mask)).Newline()
		}
		_, mask, err := an.TransitionOf(s, -1)
		w.Err(err)
		w.Writef("%s,", maskLiteral(an, n, mask)).Newline()
		w.Unindent()
		w.Write("},").Newline()
	}
	w.Unindent()
	w.Write("};").Newline().Newline()
}

// maskLiteral renders a resolved action bitmask as an OR of ActionType
// identifiers, falling back to the numeral 0 when no action fired.
func maskLiteral(an *analyzer.Analyzer, n names, mask uint64) string {
	if mask == 0 {
		return "0"
	}
	var parts []string
	for _, act := range an.Actions() {
		if mask&(1<<uint(act.OrderKey)) != 0 {
			parts = append(parts, actionEnumID(n, act.Name))
		}
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " | " + p
	}
	return out
}

func writeClassify(w *emitter.CodeWriter, an *analyzer.Analyzer, n names, ch string) {
	classes := an.Classes().Classes()
	w.Writef("CharacterClass classify(%s ch) {", ch).Newline()
	w.Indent()
	w.Write("switch (static_cast<long>(ch)) {").Newline()
	w.Indent()
	for i, cls := range classes {
		for _, cp := range cls.Sorted() {
			w.Writef("case %s:", caseLabel(cp)).Newline()
		}
		w.Indent()
		w.Writef("return cc_%d;", i).Newline()
		w.Unindent()
	}
	w.Write("default:").Newline()
	w.Indent()
	w.Write("return cc_other;").Newline()
	w.Unindent()
	w.Unindent()
	w.Write("}").Newline()
	w.Unindent()
	w.Write("}").Newline().Newline()
}

func caseLabel(cp rune) string {
	lit := strconv.FormatInt(int64(cp), 10)
	if cp >= 0x20 && cp < 0x7f && cp != '\'' && cp != '\\' {
		lit += " /* '" + string(cp) + "' */"
	}
	return lit
}

func writeIsFinal(w *emitter.CodeWriter, an *analyzer.Analyzer, n names) {
	final := an.FinalStates()
	w.Write("bool isFinal(StateType s) {").Newline()
	w.Indent()
	w.Write("switch (s) {").Newline()
	w.Indent()
	for _, s := range an.States() {
		if final[s] {
			w.Writef("case %s:", stateEnumID(n, s)).Newline()
		}
	}
	w.Indent()
	w.Write("return true;").Newline()
	w.Unindent()
	w.Write("default:").Newline()
	w.Indent()
	w.Write("return false;").Newline()
	w.Unindent()
	w.Unindent()
	w.Write("}").Newline()
	w.Unindent()
	w.Write("}").Newline().Newline()
}

func writeMemberFunctions(w *emitter.CodeWriter, an *analyzer.Analyzer, n names, className, ch string) {
	start := an.StartState()

	w.Writef("%s::%s() : state_(%s) {", className, className, stateEnumID(n, start)).Newline()
	w.Write("}").Newline().Newline()

	w.Writef("bool %s::processChar(%s ch) {", className, ch).Newline()
	w.Indent()
	w.Write("CharacterClass cc = classify(ch);").Newline()
	w.Write("int classIdx = static_cast<int>(cc);").Newline()
	w.Write("int next = parserTransitions[state_][classIdx];").Newline()
	w.Write("unsigned mask = parserActions[state_][classIdx];").Newline()
	for _, act := range an.Actions() {
		w.Writef("if (mask & %s) {", actionEnumID(n, act.Name)).Newline()
		w.Indent()
		if act.Options.CharVar != "" {
			w.Writef("actions_.do_%s(ch);", n.action[act.Name]).Newline()
		} else {
			w.Writef("actions_.do_%s();", n.action[act.Name]).Newline()
		}
		w.Unindent()
		w.Write("}").Newline()
	}
	w.Write("state_ = next;").Newline()
	w.Writef("return state_ != %s;", stateEnumID(n, automaton.ErrorStateName)).Newline()
	w.Unindent()
	w.Write("}").Newline().Newline()

	w.Writef("bool %s::final() const {", className).Newline()
	w.Indent()
	w.Write("return isFinal(static_cast<StateType>(state_));").Newline()
	w.Unindent()
	w.Write("}").Newline().Newline()

	for _, act := range an.Actions() {
		sig := actionSignature(n, act, ch)
		w.Writef("void %s::Actions::%s {", className, sig).Newline()
		w.Indent()
		if act.CodeFragment != nil {
			body, err := act.CodeFragment.Render(automaton.GeneratorContext{
				CharType:  ch,
				ClassName: className,
				Sanitize:  Sanitize,
			})
			w.Err(err)
			w.Write(body).Newline()
		}
		w.Unindent()
		w.Write("}").Newline().Newline()
	}

	w.Writef("void %s::Actions::reset_fields() {", className).Newline()
	w.Write("}").Newline()
}
