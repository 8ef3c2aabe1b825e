// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/bitmark-inc/ballotd/fault"
	"github.com/bitmark-inc/ballotd/ledger"
	"github.com/bitmark-inc/ballotd/rpc/ratelimit"
	"github.com/bitmark-inc/ballotd/rpc/server"
	"github.com/bitmark-inc/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// access categories for the allow configuration
const (
	Details = "details"
	Query   = "query"
)

// largest accepted selector document
const maximumQuerySize = 64 * 1024

// Handler - read only HTTPS gateway onto the ballot queries
type Handler struct {
	sync.RWMutex
	log      *logger.L
	shared   *server.Shared
	identity ledger.ClientIdentity
	router   *mux.Router
	allow    map[string][]*net.IPNet
}

// New - routes for the gateway, queries run as the given identity
func New(log *logger.L, shared *server.Shared, identity ledger.ClientIdentity) *Handler {
	h := &Handler{
		log:      log,
		shared:   shared,
		identity: identity,
		allow:    make(map[string][]*net.IPNet),
	}

	r := mux.NewRouter()
	r.HandleFunc("/ballotd/history/{election:[0-9]+}/{ballot:[0-9]+}", h.history)
	r.HandleFunc("/ballotd/election/{election:[0-9]+}", h.election)
	r.HandleFunc("/ballotd/partial/{prefix}", h.partial)
	r.HandleFunc("/ballotd/named/{name}", h.named)
	r.HandleFunc("/ballotd/adhoc", h.adhoc)
	r.HandleFunc("/ballotd/details", h.details)
	r.NotFoundHandler = http.HandlerFunc(h.root)
	h.router = r

	return h
}

// SetAllow - replace the access control lists
func (h *Handler) SetAllow(allow map[string][]*net.IPNet) {
	h.Lock()
	h.allow = allow
	h.Unlock()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// this matches anything not matched and returns error
func (h *Handler) root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r, http.MethodGet, Query) {
		return
	}
	vars := mux.Vars(r)
	h.invoke(w, "queryHistory", vars["election"], vars["ballot"])
}

func (h *Handler) election(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r, http.MethodGet, Query) {
		return
	}
	h.invoke(w, "queryElection", mux.Vars(r)["election"])
}

func (h *Handler) partial(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r, http.MethodGet, Query) {
		return
	}
	h.invoke(w, "queryPartial", mux.Vars(r)["prefix"])
}

func (h *Handler) named(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r, http.MethodGet, Query) {
		return
	}
	h.invoke(w, "queryNamed", mux.Vars(r)["name"])
}

// POST body is the selector document
func (h *Handler) adhoc(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r, http.MethodPost, Query) {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maximumQuerySize+1))
	if nil != err {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) > maximumQuerySize {
		sendError(w, "query too large", http.StatusRequestEntityTooLarge)
		return
	}
	h.invoke(w, "queryAdhoc", string(body))
}

// DetailsReply - node state for monitoring
type DetailsReply struct {
	Height  uint64 `json:"height"`
	RPCs    uint64 `json:"rpcs"`
	Members int    `json:"members"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	if !h.accept(w, r, http.MethodGet, Details) {
		return
	}

	reply := DetailsReply{
		RPCs:    h.shared.Count.Uint64(),
		Version: h.shared.Version,
		Uptime:  time.Since(h.shared.Start).String(),
	}
	if nil != h.shared.Ledger {
		height, err := h.shared.Ledger.Height()
		if nil != err {
			sendError(w, err.Error(), statusCode(err))
			return
		}
		reply.Height = height
	}
	if nil != h.shared.Members {
		reply.Members = h.shared.Members.Count()
	}

	sendReply(w, reply)
}

// method, address and rate checks common to every route
func (h *Handler) accept(w http.ResponseWriter, r *http.Request, method string, category string) bool {
	if method != r.Method {
		sendMethodNotAllowed(w)
		return false
	}
	if !h.allowed(r.RemoteAddr, category) {
		h.log.Warnf("deny access: %q  category: %s", r.RemoteAddr, category)
		sendForbidden(w)
		return false
	}
	if err := ratelimit.Limit(h.shared.Limiter); nil != err {
		sendError(w, err.Error(), http.StatusTooManyRequests)
		return false
	}
	return true
}

func (h *Handler) allowed(remoteAddr string, category string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}

	h.RLock()
	defer h.RUnlock()

	for _, cidr := range h.allow[category] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

func (h *Handler) invoke(w http.ResponseWriter, name string, args ...string) {
	result, err := h.shared.Invoker.Invoke(h.identity, name, args)
	if nil != err {
		h.log.Debugf("%s: %q  error: %s", name, args, err)
		sendError(w, err.Error(), statusCode(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, fault.RateLimiting):
		return http.StatusTooManyRequests
	case fault.IsErrNotFound(err):
		return http.StatusNotFound
	case fault.IsErrInvalid(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
