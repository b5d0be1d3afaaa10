package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/amir-mohammad-maghrooni/DiseaseSim/epidemicsim"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

var config epidemicsim.Config

func homePage(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Disease Simulation Server")
}

func wsEndpoint(w http.ResponseWriter, r *http.Request) {
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	// each client gets its own world
	session := epidemicsim.SetupSession(config)
	log.Printf("Client connected, session %v", session.Id)
	go session.Run()

	go reader(ws, session)
	go writer(ws, session)
}

func reader(conn *websocket.Conn, session *epidemicsim.Session) {
	defer close(session.Quit)
	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			log.Println(err)
			return
		}
		fmt.Println("[Server-Recieve]" + string(p))
		session.Recieve <- string(p)
	}
}

func writer(conn *websocket.Conn, session *epidemicsim.Session) {
	for {
		select {
		case <-session.Quit:
			return
		case sendMessage := <-session.Send:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(sendMessage)); err != nil {
				log.Println(err)
				return
			}
		}
	}
}

func setupRoutes() {
	http.HandleFunc("/", homePage)
	http.HandleFunc("/ws", wsEndpoint)
}

func main() {
	var err error
	config, err = epidemicsim.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if config.AutoPolicyLog != "" {
		if err := epidemicsim.InitLogger(config.AutoPolicyLog); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("[Server]Started on %v\n", config.Listen)
	setupRoutes()
	log.Fatal(http.ListenAndServe(config.Listen, nil))
}
