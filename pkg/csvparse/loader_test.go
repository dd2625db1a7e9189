package csvparse

import (
	"testing"
)

type pair struct {
	ID   string
	Name string
}

func TestLoadWithHeaders_InputOrder(t *testing.T) {
	got := LoadWithHeaders("id,name\n1,Alpha\n2,Beta", func(r Record) pair {
		return pair{ID: r.Get("id"), Name: r.Get("name")}
	})

	if len(got) != 2 {
		t.Fatalf("期望 2 条记录，实际=%d", len(got))
	}
	if got[0] != (pair{"1", "Alpha"}) || got[1] != (pair{"2", "Beta"}) {
		t.Errorf("记录内容或顺序错误: %+v", got)
	}
}

func TestLoadWithHeaders_ShortRowDefaultsToEmpty(t *testing.T) {
	got := LoadWithHeaders("id,name,color\n1", func(r Record) Record { return r })
	if len(got) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(got))
	}
	if v, ok := got[0]["color"]; !ok || v != "" {
		t.Errorf("缺失列应为空串，实际=%q (present=%v)", v, ok)
	}
}

func TestLoad_EmptyAndHeaderOnly(t *testing.T) {
	for _, text := range []string{"", "   \n", "id,name"} {
		if got := LoadWithHeaders(text, func(r Record) Record { return r }); len(got) != 0 {
			t.Errorf("LoadWithHeaders(%q) 应为空，实际=%d", text, len(got))
		}
		got := LoadPositional(text, func(r Row) Row { return r })
		if got == nil || len(got) != 0 {
			t.Errorf("LoadPositional(%q) 应为非 nil 空切片", text)
		}
	}
}

func TestLoadPositional_DiscardsHeader(t *testing.T) {
	got := LoadPositional("whatever,header\nv1,Hall\nv2,\"Court, North\"", func(r Row) pair {
		return pair{ID: r.At(0), Name: r.At(1)}
	})
	if len(got) != 2 {
		t.Fatalf("期望 2 条记录，实际=%d", len(got))
	}
	if got[1].Name != "Court, North" {
		t.Errorf("期望 Name=Court, North，实际=%s", got[1].Name)
	}
}

func TestInt(t *testing.T) {
	tests := map[string]int{
		"42":    42,
		" 7 ":   7,
		"12.9":  12,
		"15pts": 15,
		"-3":    -3,
		"":      0,
		"abc":   0,
		"-":     0,
	}
	for in, want := range tests {
		if got := Int(in); got != want {
			t.Errorf("Int(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestBool(t *testing.T) {
	if !Bool("true") {
		t.Error(`"true" 应为真`)
	}
	for _, s := range []string{"TRUE", "1", "yes", ""} {
		if Bool(s) {
			t.Errorf("%q 应为假", s)
		}
	}
}

func TestLoadSchema_DefaultsAndMissing(t *testing.T) {
	schema := NewSchema("score",
		Column{Name: "id"},
		Column{Name: "gameI", Kind: KindInt},
		Column{Name: "color", Default: "#e0e0e0"},
	)

	res := LoadSchema("id,color\nt1,\nt2,#fff", schema, func(v Values) [3]string {
		return [3]string{v.String("id"), v.String("color"), string(rune('0' + v.Int("gameI")))}
	})

	if len(res.Missing) != 1 || res.Missing[0] != "gameI" {
		t.Errorf("期望缺失列 [gameI]，实际=%v", res.Missing)
	}
	if len(res.Items) != 2 {
		t.Fatalf("期望 2 条记录，实际=%d", len(res.Items))
	}
	if res.Items[0][1] != "#e0e0e0" {
		t.Errorf("空值应回落到缺省值，实际=%s", res.Items[0][1])
	}
	if res.Items[0][2] != "0" {
		t.Errorf("缺失的整数列应为 0，实际=%s", res.Items[0][2])
	}
	if res.Items[1][1] != "#fff" {
		t.Errorf("期望 #fff，实际=%s", res.Items[1][1])
	}
}

func TestValues_AccessorMustMatchDeclaredKind(t *testing.T) {
	schema := NewSchema("props",
		Column{Name: "name"},
		Column{Name: "quantity", Kind: KindInt},
		Column{Name: "isActive", Kind: KindBool},
	)
	v := Values{schema: schema, rec: Record{"name": "Mic", "quantity": "3", "isActive": "true"}}

	if v.String("name") != "Mic" || v.Int("quantity") != 3 || !v.Bool("isActive") {
		t.Fatal("类型匹配的读取应成功")
	}

	cases := map[string]func(){
		"字符串列按整数读": func() { v.Int("name") },
		"整数列按字符串读": func() { v.String("quantity") },
		"布尔列按可选整数读": func() { v.OptionalInt("isActive") },
		"未声明的列":    func() { v.String("color") },
	}
	for name, read := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("期望 panic")
				}
			}()
			read()
		})
	}
}
