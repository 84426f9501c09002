// Package router resolve caminhos HTTP em uma árvore de nós.
//
// Cada nó possui uma tabela de filhos estáticos (segmentos literais) e,
// opcionalmente, um Resolver que constrói o filho a partir do próprio segmento,
// usado quando o segmento é um dado (ex: a chave pública de um canal).
//
//	root := router.NewNode()
//	channels := root.Static("channels")
//	channels.Get(listChannels)
//	channels.Dynamic(func(segment string) (*router.Node, error) {
//	    pk, err := models.ParseHashID(segment)
//	    if err != nil {
//	        return nil, router.BadRequest("invalid public key")
//	    }
//	    return channelNode(pk), nil
//	})
package router

import (
	"net/http"
	"sort"
	"strings"
)

// HandlerFunc atende uma requisição. Um erro retornado é renderizado pelo roteador.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Resolver constrói o nó filho para um segmento que não casou com a tabela estática.
// Deve ser uma função pura do segmento.
type Resolver func(segment string) (*Node, error)

// Node é um nó da árvore de rotas.
type Node struct {
	children map[string]*Node
	resolver Resolver
	handlers map[string]HandlerFunc
}

// NewNode cria um nó vazio.
func NewNode() *Node {
	return &Node{
		children: make(map[string]*Node),
		handlers: make(map[string]HandlerFunc),
	}
}

// Mount registra child sob o segmento literal e devolve child.
func (n *Node) Mount(segment string, child *Node) *Node {
	n.children[segment] = child
	return child
}

// Static devolve o filho literal do segmento, criando-o se necessário.
func (n *Node) Static(segment string) *Node {
	if child, ok := n.children[segment]; ok {
		return child
	}
	return n.Mount(segment, NewNode())
}

// Dynamic define o Resolver do nó.
func (n *Node) Dynamic(r Resolver) *Node {
	n.resolver = r
	return n
}

// Handle registra o handler do método.
func (n *Node) Handle(method string, h HandlerFunc) *Node {
	n.handlers[method] = h
	return n
}

func (n *Node) Get(h HandlerFunc) *Node  { return n.Handle(http.MethodGet, h) }
func (n *Node) Post(h HandlerFunc) *Node { return n.Handle(http.MethodPost, h) }
func (n *Node) Put(h HandlerFunc) *Node  { return n.Handle(http.MethodPut, h) }

// Resolve consome os segmentos do caminho da esquerda para a direita.
// Em cada nó tenta primeiro a tabela estática e depois o Resolver.
func (n *Node) Resolve(path string) (*Node, error) {
	current := n
	for _, segment := range Segments(path) {
		if child, ok := current.children[segment]; ok {
			current = child
			continue
		}
		if current.resolver == nil {
			return nil, NotFound("the requested resource %q does not exist", path)
		}
		child, err := current.resolver(segment)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return nil, NotFound("the requested resource %q does not exist", path)
		}
		current = child
	}
	return current, nil
}

// HandlerFor devolve o handler do método. HEAD usa o handler de GET.
// Um nó resolvido sem handler para o método responde 405, mesmo quando é apenas
// intermediário (Allow vazio).
func (n *Node) HandlerFor(method string) (HandlerFunc, error) {
	if h, ok := n.handlers[method]; ok {
		return h, nil
	}
	if method == http.MethodHead {
		if h, ok := n.handlers[http.MethodGet]; ok {
			return h, nil
		}
	}
	return nil, &Error{
		Kind:    KindMethodNotAllowed,
		Message: "method " + method + " not allowed",
		Allow:   n.Methods(),
	}
}

// Methods lista os métodos registrados, em ordem alfabética.
func (n *Node) Methods() []string {
	methods := make([]string, 0, len(n.handlers))
	for m := range n.handlers {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// ServeHTTP implementa http.Handler sobre a árvore.
func (n *Node) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	node, err := n.Resolve(r.URL.Path)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h, err := node.HandlerFor(r.Method)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if err := h(w, r); err != nil {
		WriteError(w, r, err)
	}
}

// Segments divide o caminho em segmentos, descartando os vazios.
func Segments(path string) []string {
	raw := strings.Split(path, "/")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
