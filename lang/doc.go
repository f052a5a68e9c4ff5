// Package lang tokenizes shader material source text into a tree of typed
// nodes.
//
// The grammar is small enough for a hand-written recursive descent parser.
// No parser generator and no generated code are involved. The parser only
// checks syntax; it never interprets literals. Numeric literals are
// classified by their lexical form, arrays may hold any number of elements,
// and named blocks other than SetupProxies and RenderProxies are accepted.
// Semantic checks belong to the consumer of the tree.
//
// # Grammar
//
// Informal EBNF:
//
//	Material   → Identifier? '{' Item* '}' EOF
//	Item       → VarDecl | Block
//	VarDecl    → 'var' Identifier '=' Value ';'
//	Block      → Identifier '{' Proxy* '}'
//	Proxy      → Identifier '{' Param* '}'
//	Param      → Identifier '=' Reference ';'
//	Reference  → Identifier '[' Digits ']' | Identifier | Value
//	Value      → String | Number | Array
//	Array      → '[' (Literal (',' Literal)*)? ']'
//	Literal    → String | Number
//	Number     → [+-]? Digits ('.' Digits)? ([eE] [+-]? Digits)? ('f' | 'd')?
//	String     → '"' (escape | [^"\\])* '"'
//
// Line comments begin with // and block comments are enclosed in /* */.
//
// # Example
//
//	UnlitGeneric {
//	  var basetexture = "models/props/crate";
//	  var color = [1, 0.5f, 0.25f];
//
//	  SetupProxies {
//	    Sine { resultVar = alpha; sineperiod = 2.0; }
//	  }
//	  RenderProxies {
//	    Equals { srcVar1 = color[0]; resultVar = alpha; }
//	  }
//	}
//
// # Tree shape
//
// The root node has kind [KindMaterial]. Its children appear in source
// order: one [KindShader] node (with no children when the shader identifier
// is omitted), then [KindVariable] and block nodes. A variable has an
// identifier child followed by a [KindValue] wrapper. A block holds
// [KindProxy] nodes, each with an identifier child followed by
// [KindProxyParameter] nodes. Numeric literals are [KindNumber] wrappers
// around exactly one lexical class node such as [KindFloat].
package lang
