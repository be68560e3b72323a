package main

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/socialjuris/api-juridica/internal/area"
	"github.com/socialjuris/api-juridica/internal/assinatura"
	"github.com/socialjuris/api-juridica/internal/auth"
	"github.com/socialjuris/api-juridica/internal/caso"
	"github.com/socialjuris/api-juridica/internal/ia"
	"github.com/socialjuris/api-juridica/internal/juris"
	"github.com/socialjuris/api-juridica/internal/mensagem"
	"github.com/socialjuris/api-juridica/internal/notificacao"
	"github.com/socialjuris/api-juridica/internal/projecao"
	"github.com/socialjuris/api-juridica/internal/realtime"
	"github.com/socialjuris/api-juridica/internal/usuario"
	"github.com/socialjuris/api-juridica/internal/utils/db"
)

func migrar(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&usuario.Usuario{},
		&caso.Caso{},
		&auth.RefreshToken{},
	); err != nil {
		return err
	}
	for _, fn := range []func(*gorm.DB) error{
		mensagem.Migrate,
		notificacao.Migrate,
		juris.Migrate,
		area.Migrate,
		assinatura.Migrate,
	} {
		if err := fn(conn); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("arquivo .env não encontrado, usando variáveis do ambiente")
	}

	conn, err := db.GetDB()
	if err != nil {
		logrus.WithError(err).Fatal("erro ao conectar no banco")
	}

	if err := migrar(conn); err != nil {
		logrus.WithError(err).Fatal("erro nas migrações")
	}

	// Feed de alterações e projeção local
	hub := realtime.NewHub()
	store := projecao.NewStore(conn, hub)
	store.CarregarTudo()

	// Handlers
	iaCliente := ia.NewCliente()
	usuarioHandler := usuario.NewHandler(conn, hub)
	casoHandler := caso.NewHandler(conn, iaCliente, hub)
	mensagemHandler := mensagem.NewHandler(conn, casoHandler.Repository, hub)
	notificacaoHandler := notificacao.NewHandler(conn)
	jurisHandler := juris.NewHandler(conn, hub)
	iaHandler := ia.NewHandler(iaCliente)
	areaHandler := area.NewHandler(conn)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/registrar", usuarioHandler.Registrar).Methods("POST")
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/recuperar-senha", usuarioHandler.RecuperarSenha).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(conn)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(conn)).Methods("POST")
	r.HandleFunc("/areas", areaHandler.Listar).Methods("GET")
	r.Handle("/ws", hub)

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de usuários
	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/me/resumo", usuarioHandler.Resumo).Methods("GET")
	api.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	api.HandleFunc("/advogados", usuarioHandler.ListarAdvogados).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/premium/assinar", usuarioHandler.AssinarPremium).Methods("POST")
	api.HandleFunc("/premium/assinaturas", usuarioHandler.MinhasAssinaturas).Methods("GET")

	// Rotas administrativas
	api.Handle("/usuarios/{id}/verificar", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.VerificarAdvogado))).Methods("PATCH")
	api.Handle("/usuarios/{id}/rejeitar", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.RejeitarAdvogado))).Methods("POST")
	api.Handle("/usuarios/{id}/premium", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.DefinirPremium))).Methods("PATCH")
	api.Handle("/usuarios/{id}/resumo", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Resumo))).Methods("GET")

	// Rotas de casos
	api.HandleFunc("/casos", casoHandler.Criar).Methods("POST")
	api.HandleFunc("/casos", casoHandler.Listar).Methods("GET")
	api.HandleFunc("/casos/{id}", casoHandler.BuscarPorID).Methods("GET")
	api.Handle("/casos/{id}/aceitar", auth.RequirePerfil(auth.PerfilAdvogado, http.HandlerFunc(casoHandler.Aceitar))).Methods("POST")
	api.HandleFunc("/casos/{id}/encerrar", casoHandler.Encerrar).Methods("POST")

	// Rotas de mensagens
	api.HandleFunc("/casos/{id}/mensagens", mensagemHandler.Enviar).Methods("POST")
	api.HandleFunc("/casos/{id}/mensagens", mensagemHandler.ListarPorCaso).Methods("GET")

	// Rotas de notificações
	api.HandleFunc("/notificacoes", notificacaoHandler.Listar).Methods("GET")
	api.HandleFunc("/notificacoes/nao-lidas", notificacaoHandler.ContarNaoLidas).Methods("GET")
	api.HandleFunc("/notificacoes/{id}/lida", notificacaoHandler.MarcarComoLida).Methods("PATCH")
	api.HandleFunc("/notificacoes/marcar-todas", notificacaoHandler.MarcarTodasComoLidas).Methods("POST")

	// Rotas de Juris
	api.Handle("/juris/comprar", auth.RequirePerfil(auth.PerfilAdvogado, http.HandlerFunc(jurisHandler.Comprar))).Methods("POST")
	api.Handle("/juris/saldo", auth.RequirePerfil(auth.PerfilAdvogado, http.HandlerFunc(jurisHandler.Saldo))).Methods("GET")
	api.Handle("/juris/extrato", auth.RequirePerfil(auth.PerfilAdvogado, http.HandlerFunc(jurisHandler.Extrato))).Methods("GET")

	// Rotas de IA
	api.HandleFunc("/ia/classificar", iaHandler.Classificar).Methods("POST")
	api.Handle("/ia/analise-parte-contraria", auth.RequirePerfil(auth.PerfilAdvogado, http.HandlerFunc(iaHandler.AnalisarParteContraria))).Methods("POST")
	api.Handle("/ia/atualizacao-monetaria", auth.RequirePerfil(auth.PerfilAdvogado, http.HandlerFunc(iaHandler.CalcularAtualizacao))).Methods("POST")

	// Origem ecoada (não "*") porque o refresh token viaja em cookie
	c := cors.New(cors.Options{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	logrus.WithField("porta", porta).Info("servidor iniciado")
	logrus.Fatal(http.ListenAndServe(":"+porta, c.Handler(r)))
}
