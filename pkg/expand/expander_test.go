package expand

import (
	"strings"
	"testing"

	"github.com/scalpel-ui/scalpel/pkg/syntax"
)

func expandOne(t *testing.T, src string) string {
	t.Helper()
	form, err := syntax.ReadOne(src)
	if err != nil {
		t.Fatalf("ReadOne(%q) failed: %v", src, err)
	}
	out, err := Form(form)
	if err != nil {
		t.Fatalf("Form(%q) failed: %v", src, err)
	}
	return out.String()
}

func expandErr(t *testing.T, src string) error {
	t.Helper()
	form, err := syntax.ReadOne(src)
	if err != nil {
		t.Fatalf("ReadOne(%q) failed: %v", src, err)
	}
	_, err = Form(form)
	if err == nil {
		t.Fatalf("expected expansion of %q to fail, got none", src)
	}
	return err
}

func TestExpandElements(t *testing.T) {
	cases := []struct{ src, want string }{
		{`[:div]`,
			`(sx/element "div" {})`},
		{`[:div "hi"]`,
			`(sx/element "div" {} "hi")`},
		{`[:<> "a" "b"]`,
			`(sx/fragment "a" "b")`},
		{`[:div (current-user)]`,
			`(sx/element "div" {} (fn [] (current-user)))`},
		{`[:div [:span "x"]]`,
			`(sx/element "div" {} (sx/element "span" {} "x"))`},
		{`[:div (fn [] "later")]`,
			`(sx/element "div" {} (fn [] "later"))`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandAttributes(t *testing.T) {
	cases := []struct{ src, want string }{
		// Literal values pass through; the rest is deferred. Key order
		// is preserved and names are camelCased except aria-/data-.
		{`[:input {:type "text" :data-user-id uid :aria-label "Name" :stroke-width 2}]`,
			`(sx/element "input" {"type" "text", "data-user-id" (fn [] uid), "aria-label" "Name", "strokeWidth" 2})`},
		// Event handler values pass through unwrapped, keys camelCase.
		{`[:button {:on-click (fn [e] (submit! e))} "go"]`,
			`(sx/element "button" {"onClick" (fn [e] (submit! e))} "go")`},
		// Ref plus directives fold into one composite callback at the
		// ref's position, directives in declaration order.
		{`[:div {:ref save tooltip "tip" :id "a"}]`,
			`(sx/element "div" {"ref" (fn [el__1] (do (save el__1) (tooltip el__1 "tip"))), "id" "a"})`},
		// Directives without an author ref synthesize one, appended.
		{`[:div {:id "a" tooltip "tip"}]`,
			`(sx/element "div" {"id" "a", "ref" (fn [el__1] (tooltip el__1 "tip"))})`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandStyle(t *testing.T) {
	cases := []struct{ src, want string }{
		{`[:div {:style {:margin-top m :z-index 5 :opacity "0.5"}}]`,
			`(sx/element "div" {"style" (sx/style "marginTop" (fn [] m) "zIndex" 5 "opacity" "0.5")})`},
		// A non-map style is deferred whole; the runtime walks its
		// entries per key.
		{`[:div {:style (compute-style)}]`,
			`(sx/element "div" {"style" (fn [] (compute-style))})`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandClass(t *testing.T) {
	cases := []struct{ src, want string }{
		{`[:div {:class {:active @on "is-admin" admin?}}]`,
			`(sx/element "div" {"class" (sx/class-list "active" (fn [] (deref on)) "is-admin" (fn [] admin?))})`},
		// All-static vectors collapse to one string at expansion time.
		{`[:div {:class [:btn :btn-primary "extra"]}]`,
			`(sx/element "div" {"class" "btn btn-primary extra"})`},
		{`[:div {:class [:btn extra]}]`,
			`(sx/element "div" {"class" (fn [] [:btn extra])})`},
		{`[:div {:class (active-classes)}]`,
			`(sx/element "div" {"class" (fn [] (active-classes))})`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandComponents(t *testing.T) {
	cases := []struct{ src, want string }{
		// Property keys stay as written; non-literal values are wrapped
		// so the accessor can unwrap them at read time.
		{`[Card {:title (str "#" n) :size 2 :on-save save}]`,
			`(sx/component Card {"title" (sx/getter (fn [] (str "#" n))), "size" 2, "on-save" (sx/getter (fn [] save))})`},
		{`[Card {:on-save (fn [v] (persist v))}]`,
			`(sx/component Card {"on-save" (fn [v] (persist v))})`},
		// Children arrive as one fragment thunk.
		{`[Card {:title "hi"} [:p "body"]]`,
			`(sx/component Card {"title" "hi"} (fn [] (sx/fragment (sx/element "p" {} "body"))))`},
		{`[Card]`,
			`(sx/component Card {})`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandDefui(t *testing.T) {
	got := expandOne(t, `(defui Greeting [props] [:div "hi"])`)
	want := `(sx/define-component Greeting (fn [props] (sx/element "div" {} "hi")))`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestExpandDefuiErrors(t *testing.T) {
	bad := []string{
		`(defui Greeting [props])`,
		`(defui "Greeting" [props] [:div])`,
		`(defui Greeting [a b] [:div])`,
		`(defui Greeting props [:div])`,
	}
	for _, src := range bad {
		expandErr(t, src)
	}
}

func TestExpandConditionals(t *testing.T) {
	cases := []struct{ src, want string }{
		{`(if (logged-in?) [:div "in"] [:p "out"])`,
			`(sx/cond-view :truthy (fn [] (logged-in?)) (fn [_] (sx/element "div" {} "in")) (fn [] (sx/element "p" {} "out")))`},
		{`(when ok [:div "x"])`,
			`(sx/cond-view :truthy (fn [] ok) (fn [_] (sx/element "div" {} "x")) nil)`},
		{`(if-let [u (user)] [:div] [:p])`,
			`(sx/cond-view :truthy (fn [] (user)) (fn [u] (sx/element "div" {})) (fn [] (sx/element "p" {})))`},
		{`(when-some [v (lookup)] [:div])`,
			`(sx/cond-view :some (fn [] (lookup)) (fn [v] (sx/element "div" {})) nil)`},
		{`(or a b)`,
			`(sx/cond-view :truthy (fn [] a) (fn [v__1] v__1) (fn [] b))`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandCondAndCase(t *testing.T) {
	cases := []struct{ src, want string }{
		{`(cond (admin?) [:div "a"] :else [:p "b"])`,
			`(sx/switch-view [(fn [] (admin?)) (fn [] (sx/element "div" {} "a"))] (fn [] (sx/element "p" {} "b")))`},
		{`(case @tab :home [:div "h"] [:p "?"])`,
			`(sx/case-view (fn [] (deref tab)) [:home (fn [] (sx/element "div" {} "h"))] (fn [] (sx/element "p" {} "?")))`},
		{`(case @tab :home [:div "h"])`,
			`(sx/case-view (fn [] (deref tab)) [:home (fn [] (sx/element "div" {} "h"))] nil)`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandCondErrors(t *testing.T) {
	err := expandErr(t, `(cond (a) [:div])`)
	if !strings.Contains(err.Error(), "cond requires a trailing :else branch") {
		t.Errorf("expected missing-:else error, got %q", err.Error())
	}
	err = expandErr(t, `(cond :else [:p] (a) [:div])`)
	if !strings.Contains(err.Error(), "cond :else branch must be last") {
		t.Errorf("expected misplaced-:else error, got %q", err.Error())
	}
}

func TestExpandListForms(t *testing.T) {
	cases := []struct{ src, want string }{
		// for keys by identity: item by value, index as a handle.
		{`(for [[item i] items] [:li item])`,
			`(sx/list-view :identity (fn [] items) (fn [item i] (sx/element "li" {} (fn [] item))))`},
		{`(for [x (visible-rows)] [:li x])`,
			`(sx/list-view :identity (fn [] (visible-rows)) (fn [x i__1] (sx/element "li" {} (fn [] x))))`},
		// index keys by position: item as a handle, index by value.
		{`(index [[x i] xs] [:li x])`,
			`(sx/list-view :position (fn [] xs) (fn [x i] (sx/element "li" {} (fn [] x))))`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandListFormErrors(t *testing.T) {
	expandErr(t, `(for [x] [:li x])`)
	expandErr(t, `(for ["x" xs] [:li 1])`)
}

func TestExpandTry(t *testing.T) {
	got := expandOne(t, `(try [:div (risky)] (catch err [:p "oops"]))`)
	want := `(sx/error-boundary (fn [] (sx/element "div" {} (fn [] (risky)))) (fn [err] (sx/element "p" {} "oops")))`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestExpandTryErrors(t *testing.T) {
	err := expandErr(t, `(try [:div (risky)])`)
	if !strings.Contains(err.Error(), "catch") {
		t.Errorf("expected missing-catch error, got %q", err.Error())
	}
	expandErr(t, `(try (catch "err" [:p]))`)
}

func TestExpandBatch(t *testing.T) {
	got := expandOne(t, `(batch (set! a 1) (set! b 2))`)
	want := `(sx/batch (fn [] (do (set! a 1) (set! b 2))))`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestExpandEmptyBatchIsNoop(t *testing.T) {
	got := expandOne(t, `(batch)`)
	want := `(sx/batch (fn [] nil))`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestExpandSomeThreading(t *testing.T) {
	cases := []struct{ src, want string }{
		{`(some-> (find-user) :name)`,
			`(sx/cond-view :some (fn [] (find-user)) (fn [v__1] (:name v__1)) nil)`},
		{`(some->> xs (map f))`,
			`(sx/cond-view :some (fn [] xs) (fn [v__1] (map f v__1)) nil)`},
	}
	for _, c := range cases {
		if got := expandOne(t, c.src); got != c.want {
			t.Errorf("expand %s:\nexpected %s\ngot      %s", c.src, c.want, got)
		}
	}
}

func TestExpandErrorCarriesPosition(t *testing.T) {
	form, err := syntax.NewReader("comp.sx", "[:div\n  (cond (a) [:p])]").ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	_, err = Forms(form)
	if err == nil {
		t.Fatal("expected expansion error, got none")
	}
	if !strings.HasPrefix(err.Error(), "comp.sx:2:") {
		t.Errorf("expected error to carry comp.sx:2 location, got %q", err.Error())
	}
}

func TestMacroHeadsRegistered(t *testing.T) {
	heads := []string{
		"if", "when", "if-let", "when-let", "if-some", "when-some",
		"or", "some->", "some->>", "cond", "case", "for", "index",
		"try", "batch",
	}
	for _, head := range heads {
		if !IsMacroHead(head) {
			t.Errorf("expected %s to be a registered macro head", head)
		}
	}
	if IsMacroHead("fn") {
		t.Error("expected fn not to be a macro head")
	}
}
