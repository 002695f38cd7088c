package parser

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
	pgquery "github.com/pganalyze/pg_query_go/v2"
)

// renderExpr turns an expression node into SQL text. It is exact over the
// node kinds a column DEFAULT or CHECK typically carries and degrades to a
// generic printer for everything else. It never lets a panic escape.
func renderExpr(node *pgquery.Node) (out string) {
	if node == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			out = protoPrint(node)
		}
	}()

	switch n := node.Node.(type) {
	case *pgquery.Node_AConst:
		return renderConst(n.AConst)
	case *pgquery.Node_ColumnRef:
		return renderColumnRef(n.ColumnRef)
	case *pgquery.Node_FuncCall:
		return renderFuncCall(n.FuncCall)
	case *pgquery.Node_AExpr:
		return renderAExpr(node, n.AExpr)
	case *pgquery.Node_TypeCast:
		return renderTypeCast(n.TypeCast)
	case *pgquery.Node_AArrayExpr:
		return "ARRAY[" + renderList(n.AArrayExpr.Elements) + "]"
	case *pgquery.Node_BoolExpr:
		return renderBoolExpr(node, n.BoolExpr)
	case *pgquery.Node_NullTest:
		return renderNullTest(node, n.NullTest)
	case *pgquery.Node_SqlvalueFunction:
		return renderValueFunction(node, n.SqlvalueFunction)
	case *pgquery.Node_List:
		return renderList(n.List.Items)
	default:
		return genericPrint(node)
	}
}

func renderConst(c *pgquery.A_Const) string {
	if c.Val == nil {
		return "NULL"
	}
	switch v := c.Val.Node.(type) {
	case *pgquery.Node_Integer:
		return strconv.FormatInt(int64(v.Integer.Ival), 10)
	case *pgquery.Node_Float:
		return v.Float.Str
	case *pgquery.Node_String_:
		return pq.QuoteLiteral(v.String_.Str)
	case *pgquery.Node_BitString:
		// Reported as the bare digits behind a type letter, e.g. b1010 for
		// B'1010' and x1F for X'1F'. Restore the SQL spelling.
		if s := v.BitString.Str; len(s) > 0 {
			return strings.ToUpper(s[:1]) + "'" + s[1:] + "'"
		}
		return "B''"
	case *pgquery.Node_Null:
		return "NULL"
	default:
		return genericPrint(c.Val)
	}
}

func renderColumnRef(ref *pgquery.ColumnRef) string {
	parts := make([]string, 0, len(ref.Fields))
	for _, field := range ref.Fields {
		switch f := field.Node.(type) {
		case *pgquery.Node_String_:
			parts = append(parts, f.String_.Str)
		case *pgquery.Node_AStar:
			parts = append(parts, "*")
		}
	}
	return strings.Join(parts, ".")
}

func renderFuncCall(call *pgquery.FuncCall) string {
	name := renderNameList(call.Funcname)
	if call.AggStar {
		return name + "(*)"
	}
	return name + "(" + renderList(call.Args) + ")"
}

func renderAExpr(node *pgquery.Node, expr *pgquery.A_Expr) string {
	op := renderNameList(expr.Name)
	right := renderExpr(expr.Rexpr)

	switch expr.Kind {
	case pgquery.A_Expr_Kind_AEXPR_OP:
		if expr.Lexpr == nil {
			return op + " " + right
		}
		return renderExpr(expr.Lexpr) + " " + op + " " + right
	case pgquery.A_Expr_Kind_AEXPR_OP_ANY:
		// col = ANY (ARRAY[...]) keeps its shape instead of being rewritten.
		return renderExpr(expr.Lexpr) + " " + op + " ANY (" + right + ")"
	case pgquery.A_Expr_Kind_AEXPR_OP_ALL:
		return renderExpr(expr.Lexpr) + " " + op + " ALL (" + right + ")"
	case pgquery.A_Expr_Kind_AEXPR_IN:
		keyword := " IN ("
		if op == "<>" {
			keyword = " NOT IN ("
		}
		return renderExpr(expr.Lexpr) + keyword + right + ")"
	default:
		return genericPrint(node)
	}
}

func renderTypeCast(cast *pgquery.TypeCast) string {
	typ := NormalizeTypeName(typeNameString(cast.TypeName))

	// The raw grammar represents TRUE/FALSE as a cast of 't'/'f' to bool.
	if typ == "BOOLEAN" {
		switch constString(cast.Arg) {
		case "t":
			return "true"
		case "f":
			return "false"
		}
	}
	return "CAST(" + renderExpr(cast.Arg) + " AS " + typ + ")"
}

func renderBoolExpr(node *pgquery.Node, expr *pgquery.BoolExpr) string {
	args := make([]string, len(expr.Args))
	for i, arg := range expr.Args {
		args[i] = renderExpr(arg)
	}
	switch expr.Boolop {
	case pgquery.BoolExprType_AND_EXPR:
		return strings.Join(args, " AND ")
	case pgquery.BoolExprType_OR_EXPR:
		return strings.Join(args, " OR ")
	case pgquery.BoolExprType_NOT_EXPR:
		return "NOT " + args[0]
	default:
		return genericPrint(node)
	}
}

func renderNullTest(node *pgquery.Node, test *pgquery.NullTest) string {
	switch test.Nulltesttype {
	case pgquery.NullTestType_IS_NULL:
		return renderExpr(test.Arg) + " IS NULL"
	case pgquery.NullTestType_IS_NOT_NULL:
		return renderExpr(test.Arg) + " IS NOT NULL"
	default:
		return genericPrint(node)
	}
}

func renderValueFunction(node *pgquery.Node, fn *pgquery.SQLValueFunction) string {
	switch fn.Op {
	case pgquery.SQLValueFunctionOp_SVFOP_CURRENT_DATE:
		return "CURRENT_DATE"
	case pgquery.SQLValueFunctionOp_SVFOP_CURRENT_TIME:
		return "CURRENT_TIME"
	case pgquery.SQLValueFunctionOp_SVFOP_CURRENT_TIMESTAMP:
		return "CURRENT_TIMESTAMP"
	case pgquery.SQLValueFunctionOp_SVFOP_LOCALTIME:
		return "LOCALTIME"
	case pgquery.SQLValueFunctionOp_SVFOP_LOCALTIMESTAMP:
		return "LOCALTIMESTAMP"
	case pgquery.SQLValueFunctionOp_SVFOP_CURRENT_USER:
		return "CURRENT_USER"
	case pgquery.SQLValueFunctionOp_SVFOP_SESSION_USER:
		return "SESSION_USER"
	case pgquery.SQLValueFunctionOp_SVFOP_CURRENT_SCHEMA:
		return "CURRENT_SCHEMA"
	default:
		return genericPrint(node)
	}
}

func renderList(nodes []*pgquery.Node) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = renderExpr(node)
	}
	return strings.Join(parts, ", ")
}

// renderNameList joins the String parts of a qualified name, leaving out the
// pg_catalog qualifier the parser inserts for built-ins.
func renderNameList(names []*pgquery.Node) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if s, ok := name.Node.(*pgquery.Node_String_); ok && s.String_.Str != "pg_catalog" {
			parts = append(parts, s.String_.Str)
		}
	}
	return strings.Join(parts, ".")
}

func constString(node *pgquery.Node) string {
	if node == nil {
		return ""
	}
	c, ok := node.Node.(*pgquery.Node_AConst)
	if !ok || c.AConst.Val == nil {
		return ""
	}
	if s, ok := c.AConst.Val.Node.(*pgquery.Node_String_); ok {
		return s.String_.Str
	}
	return ""
}

// genericPrint is the catch-all printer for node kinds the renderer does not
// model: it wraps the expression in a synthetic SELECT and asks pg_query to
// deparse it back to SQL. If even that fails, the protobuf form is returned
// so the caller still gets stable text.
func genericPrint(node *pgquery.Node) (out string) {
	defer func() {
		if recover() != nil {
			out = protoPrint(node)
		}
	}()

	stmt := &pgquery.RawStmt{
		Stmt: &pgquery.Node{Node: &pgquery.Node_SelectStmt{SelectStmt: &pgquery.SelectStmt{
			TargetList: []*pgquery.Node{
				{Node: &pgquery.Node_ResTarget{ResTarget: &pgquery.ResTarget{Val: node}}},
			},
			Op:          pgquery.SetOperation_SETOP_NONE,
			LimitOption: pgquery.LimitOption_LIMIT_OPTION_DEFAULT,
		}}},
	}
	sql, err := pgquery.Deparse(&pgquery.ParseResult{Stmts: []*pgquery.RawStmt{stmt}})
	if err != nil {
		return protoPrint(node)
	}
	return strings.TrimPrefix(sql, "SELECT ")
}

func protoPrint(node *pgquery.Node) string {
	return strings.TrimSpace(node.String())
}
