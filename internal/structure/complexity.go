package structure

import (
	"srcstat/internal/lang"
	"srcstat/internal/lexer"
	"srcstat/internal/model"
)

// EvaluateComplexity 在函数体记号区间上统计判定点并填充圈复杂度。
// 基数为 1，每个判定点加一：判定关键字（if/for/while/case/catch，
// 含 else if 里的 if）、短路运算符 && 与 ||、以及支持三目的方言
// 里的 ? 运算符。裸 else、do、switch、default 不产生判定点。
// 独立计数的嵌套函数体区间整体跳过，避免判定点重复归属。
func EvaluateComplexity(d *lang.Dialect, tokens []lexer.Token, decls []*ParsedDecl) {
	for _, pd := range decls {
		switch pd.Decl.Kind {
		case model.DeclFunction, model.DeclMethod:
		default:
			continue
		}

		decisions := 0
		for i := pd.Body.Start; i < pd.Body.End && i < len(tokens); i++ {
			if end, nested := nestedEnd(pd.Nested, i); nested {
				i = end - 1
				continue
			}

			tok := tokens[i]
			switch tok.Kind {
			case lexer.KindKeyword:
				if d.IsDecision(tok.Text) {
					decisions++
				}
			case lexer.KindOperator:
				switch {
				case tok.Text == "&&" || tok.Text == "||":
					decisions++
				case d.TernaryOperator && tok.Text == "?":
					decisions++
				}
			}
		}

		pd.Decl.Decisions = decisions
		pd.Decl.Complexity = 1 + decisions
	}
}

// nestedEnd 判断下标是否落在某个嵌套函数体区间内。
func nestedEnd(spans []Span, i int) (int, bool) {
	for _, span := range spans {
		if i >= span.Start && i < span.End {
			return span.End, true
		}
	}
	return 0, false
}
